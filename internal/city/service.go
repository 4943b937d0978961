package city

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/slugs"
)

var (
	ErrCityNotFound      = errors.New("city not found")
	ErrNameRequired      = errors.New("city name is required")
	ErrThumbnailRequired = errors.New("city thumbnail is required")
	ErrDuplicateCity     = errors.New("city already exists")
)

type Service interface {
	List(ctx context.Context) ([]City, error)
	ListPublic(ctx context.Context) ([]City, error)
	Get(ctx context.Context, id string) (*City, error)
	GetBySlug(ctx context.Context, slug string) (*City, error)
	Create(ctx context.Context, req CityRequest) (*City, error)
	Update(ctx context.Context, id string, req CityRequest) (*City, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]City, error) {
	return s.repo.List(ctx)
}

// ListPublic only returns cities that have a thumbnail to show.
func (s *service) ListPublic(ctx context.Context) ([]City, error) {
	return s.repo.ListWithThumbnail(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*City, error) {
	return notFound(s.repo.FindByID(ctx, id))
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*City, error) {
	return notFound(s.repo.FindBySlug(ctx, slug))
}

func (s *service) Create(ctx context.Context, req CityRequest) (*City, error) {
	name, thumb, err := validate(req)
	if err != nil {
		return nil, err
	}

	slug, err := s.slugFor(ctx, name, "")
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, name, slug, thumb)
	return c, mapWriteError(err)
}

func (s *service) Update(ctx context.Context, id string, req CityRequest) (*City, error) {
	name, thumb, err := validate(req)
	if err != nil {
		return nil, err
	}

	slug, err := s.slugFor(ctx, name, id)
	if err != nil {
		return nil, err
	}

	c, err := notFound(s.repo.Update(ctx, id, name, slug, thumb))
	return c, mapWriteError(err)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return ErrCityNotFound
		}
		return err
	}
	return nil
}

func (s *service) slugFor(ctx context.Context, name, excludeID string) (string, error) {
	return slugs.Unique(ctx, name, func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, excludeID)
	})
}

func validate(req CityRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", "", ErrNameRequired
	}
	thumb := strings.TrimSpace(req.ThumbnailURL)
	if thumb == "" {
		return "", "", ErrThumbnailRequired
	}
	return name, thumb, nil
}

func notFound(c *City, err error) (*City, error) {
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return c, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := db.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCity, db.ConstraintField(constraint))
	}
	return err
}
