package facility

import (
	"context"
	"errors"
	"strings"

	"github.com/fuazim/fitcamp/internal/db"
)

var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrNameRequired     = errors.New("facility name is required")
)

type Service interface {
	List(ctx context.Context) ([]Facility, error)
	Get(ctx context.Context, id string) (*Facility, error)
	Create(ctx context.Context, req FacilityRequest) (*Facility, error)
	Update(ctx context.Context, id string, req FacilityRequest) (*Facility, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Facility, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Facility, error) {
	f, err := s.repo.FindByID(ctx, id)
	return f, mapNotFound(err)
}

func (s *service) Create(ctx context.Context, req FacilityRequest) (*Facility, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Create(ctx, name, optional(req.Description), optional(req.IconURL))
}

func (s *service) Update(ctx context.Context, id string, req FacilityRequest) (*Facility, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	f, err := s.repo.Update(ctx, id, name, optional(req.Description), optional(req.IconURL))
	return f, mapNotFound(err)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return mapNotFound(s.repo.Delete(ctx, id))
}

// optional maps blank input to NULL.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func mapNotFound(err error) error {
	if db.IsNotFound(err) {
		return ErrFacilityNotFound
	}
	return err
}
