package gym

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fuazim/fitcamp/internal/city"
	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/slugs"

	"github.com/samber/lo"
)

var (
	ErrGymNotFound     = errors.New("gym not found")
	ErrNameRequired    = errors.New("gym name is required")
	ErrCityRequired    = errors.New("city is required")
	ErrCityNotFound    = errors.New("city not found")
	ErrDuplicateGym    = errors.New("gym already exists")
	ErrUnknownFacility = errors.New("unknown facility")
)

// CityFinder is the part of the city service gyms depend on.
type CityFinder interface {
	Get(ctx context.Context, id string) (*city.City, error)
	GetBySlug(ctx context.Context, slug string) (*city.City, error)
}

type Service interface {
	List(ctx context.Context) ([]Gym, error)
	Search(ctx context.Context, f Filter) ([]Gym, error)
	GetByID(ctx context.Context, id string) (*Gym, error)
	GetBySlug(ctx context.Context, slug string) (*Gym, error)
	Create(ctx context.Context, req GymRequest) (*Gym, error)
	Update(ctx context.Context, id string, req GymRequest) (*Gym, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	cities CityFinder
	tx     db.TxManager
}

func NewService(repo Repository, cities CityFinder, tx db.TxManager) Service {
	return &service{
		repo:   repo,
		cities: cities,
		tx:     tx,
	}
}

func (s *service) List(ctx context.Context) ([]Gym, error) {
	return s.repo.List(ctx)
}

// Search returns an empty list for an unknown city slug.
func (s *service) Search(ctx context.Context, f Filter) ([]Gym, error) {
	var cityID string
	if slug := strings.TrimSpace(f.CitySlug); slug != "" {
		c, err := s.cities.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, city.ErrCityNotFound) {
				return []Gym{}, nil
			}
			return nil, err
		}
		cityID = c.ID
	}

	return s.repo.Search(ctx, cityID, strings.TrimSpace(f.Query))
}

func (s *service) GetByID(ctx context.Context, id string) (*Gym, error) {
	g, err := s.repo.FindByID(ctx, id)
	return g, mapError(err)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Gym, error) {
	g, err := s.repo.FindBySlug(ctx, slug)
	return g, mapError(err)
}

func (s *service) Create(ctx context.Context, req GymRequest) (*Gym, error) {
	g, err := s.fromRequest(ctx, "", req)
	if err != nil {
		return nil, err
	}

	var created *Gym
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		row, err := s.repo.Create(ctx, g)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceFacilities(ctx, row.ID, req.FacilityIDs); err != nil {
			return err
		}
		if err := s.repo.ReplaceImages(ctx, row.ID, toImages(req.Images)); err != nil {
			return err
		}
		created, err = s.repo.FindByID(ctx, row.ID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, req GymRequest) (*Gym, error) {
	g, err := s.fromRequest(ctx, id, req)
	if err != nil {
		return nil, err
	}
	g.ID = id

	var updated *Gym
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, g); err != nil {
			return err
		}
		if err := s.repo.ReplaceFacilities(ctx, id, req.FacilityIDs); err != nil {
			return err
		}
		if req.Images != nil {
			if err := s.repo.ReplaceImages(ctx, id, toImages(req.Images)); err != nil {
				return err
			}
		}
		updated, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return mapError(s.repo.Delete(ctx, id))
}

func (s *service) fromRequest(ctx context.Context, id string, req GymRequest) (*Gym, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	cityID := strings.TrimSpace(req.CityID)
	if cityID == "" {
		return nil, ErrCityRequired
	}
	if _, err := s.cities.Get(ctx, cityID); err != nil {
		if errors.Is(err, city.ErrCityNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}

	slug := slugs.Make(req.Slug)
	if slug == "" {
		var err error
		slug, err = slugs.Unique(ctx, name, func(ctx context.Context, candidate string) (bool, error) {
			return s.repo.SlugExists(ctx, candidate, id)
		})
		if err != nil {
			return nil, err
		}
	}

	return &Gym{
		Name:               name,
		Slug:               slug,
		LocationText:       strings.TrimSpace(req.LocationText),
		Address:            strings.TrimSpace(req.Address),
		CityID:             cityID,
		MainImageURL:       optional(req.MainImageURL),
		ThumbnailURL:       optional(req.ThumbnailURL),
		IsPopular:          req.IsPopular,
		OpeningStartTime:   optional(req.OpeningStartTime),
		OpeningEndTime:     optional(req.OpeningEndTime),
		ContactPersonName:  optional(req.ContactPersonName),
		ContactPersonPhone: optional(req.ContactPersonPhone),
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
	}, nil
}

// toImages keeps the given sort order and falls back to the list position.
func toImages(in []ImageInput) []Image {
	images := lo.Filter(in, func(img ImageInput, _ int) bool { return strings.TrimSpace(img.URL) != "" })
	return lo.Map(images, func(img ImageInput, i int) Image {
		return Image{URL: strings.TrimSpace(img.URL), SortOrder: lo.FromPtrOr(img.SortOrder, i)}
	})
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if db.IsNotFound(err) {
		return ErrGymNotFound
	}
	if constraint, ok := db.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateGym, db.ConstraintField(constraint))
	}
	if db.ForeignKeyViolation(err) {
		return ErrUnknownFacility
	}
	return err
}
