package plan

import (
	"context"
	"errors"

	"github.com/fuazim/fitcamp/internal/db"
)

var ErrPlanNotFound = errors.New("plan not found")

type Service interface {
	ListActive(ctx context.Context) ([]Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListActive(ctx context.Context) ([]Plan, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Plan, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}
