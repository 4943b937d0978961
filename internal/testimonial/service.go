package testimonial

import (
	"context"
	"errors"
	"strings"

	"github.com/fuazim/fitcamp/internal/db"
)

var (
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrNameRequired        = errors.New("name is required")
	ErrRoleRequired        = errors.New("role is required")
	ErrTextRequired        = errors.New("testimonial text is required")
	ErrGymNotFound         = errors.New("gym not found")
)

type Service interface {
	List(ctx context.Context) ([]Testimonial, error)
	ListForGym(ctx context.Context, gymSlug string) ([]Testimonial, error)
	Get(ctx context.Context, id string) (*Testimonial, error)
	Create(ctx context.Context, req TestimonialRequest) (*Testimonial, error)
	Update(ctx context.Context, id string, req TestimonialRequest) (*Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Testimonial, error) {
	return s.repo.List(ctx)
}

func (s *service) ListForGym(ctx context.Context, gymSlug string) ([]Testimonial, error) {
	return s.repo.ListActiveByGymSlug(ctx, gymSlug)
}

func (s *service) Get(ctx context.Context, id string) (*Testimonial, error) {
	t, err := s.repo.FindByID(ctx, id)
	return t, mapError(err)
}

func (s *service) Create(ctx context.Context, req TestimonialRequest) (*Testimonial, error) {
	t, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, mapError(err)
	}
	return s.Get(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req TestimonialRequest) (*Testimonial, error) {
	t, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, mapError(err)
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return mapError(s.repo.Delete(ctx, id))
}

// fromRequest trims input; blank image and gym become NULL and isActive
// defaults to true.
func fromRequest(req TestimonialRequest) (*Testimonial, error) {
	t := &Testimonial{
		Name:      strings.TrimSpace(req.Name),
		Role:      strings.TrimSpace(req.Role),
		Text:      strings.TrimSpace(req.Text),
		ImageURL:  optional(req.ImageURL),
		GymID:     optional(req.GymID),
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	switch {
	case t.Name == "":
		return nil, ErrNameRequired
	case t.Role == "":
		return nil, ErrRoleRequired
	case t.Text == "":
		return nil, ErrTextRequired
	}
	return t, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsNotFound(err):
		return ErrTestimonialNotFound
	case db.ForeignKeyViolation(err):
		return ErrGymNotFound
	}
	return err
}
