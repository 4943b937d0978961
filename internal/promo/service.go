package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"
)

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrCodeRequired  = errors.New("promo code is required")
	ErrDuplicateCode = errors.New("promo code already exists")
	ErrInvalidWindow = errors.New("valid from must be before valid until")
)

type Service interface {
	// Validate is the read-only preview. A nil subtotal skips the minimum
	// purchase check.
	Validate(ctx context.Context, code string, subtotalCents *int64) (*PromoCode, Result, error)
	// Apply must run inside the order transaction. It locks the code and
	// consumes one use when the result is valid.
	Apply(ctx context.Context, code string, subtotalCents int64) (*PromoCode, Result, error)

	List(ctx context.Context) ([]PromoCode, error)
	Get(ctx context.Context, id string) (*PromoCode, error)
	Create(ctx context.Context, req PromoRequest) (*PromoCode, error)
	Update(ctx context.Context, id string, req PromoRequest) (*PromoCode, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}
}

func (s *service) Validate(ctx context.Context, code string, subtotalCents *int64) (*PromoCode, Result, error) {
	key := NormalizeCode(code)
	if key == "" {
		return nil, Result{}, ErrCodeRequired
	}

	p, err := s.repo.FindByCode(ctx, key)
	if err != nil && !db.IsNotFound(err) {
		return nil, Result{}, err
	}

	var res Result
	if subtotalCents == nil || *subtotalCents <= 0 {
		res = EvaluateOpen(p, s.now())
	} else {
		res = Evaluate(p, *subtotalCents, s.now())
	}
	if !res.Valid {
		metrics.RecordPromoRejection(string(res.Reason))
	}
	return p, res, nil
}

func (s *service) Apply(ctx context.Context, code string, subtotalCents int64) (*PromoCode, Result, error) {
	key := NormalizeCode(code)
	if key == "" {
		return nil, reject(ReasonNotFound), nil
	}

	p, err := s.repo.FindByCodeForUpdate(ctx, key)
	if err != nil && !db.IsNotFound(err) {
		return nil, Result{}, err
	}

	res := Evaluate(p, subtotalCents, s.now())
	if !res.Valid {
		metrics.RecordPromoRejection(string(res.Reason))
		logger.Info("promo code not applied", "code", key, "reason", res.Reason)
		return p, res, nil
	}

	if err := s.repo.IncrementUsage(ctx, p.ID); err != nil {
		return nil, Result{}, err
	}
	p.UsedCount++
	return p, res, nil
}

func (s *service) List(ctx context.Context) ([]PromoCode, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*PromoCode, error) {
	p, err := s.repo.FindByID(ctx, id)
	return p, mapError(err)
}

func (s *service) Create(ctx context.Context, req PromoRequest) (*PromoCode, error) {
	p, err := s.fromRequest(ctx, "", req)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	return created, mapError(err)
}

func (s *service) Update(ctx context.Context, id string, req PromoRequest) (*PromoCode, error) {
	p, err := s.fromRequest(ctx, id, req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	updated, err := s.repo.Update(ctx, p)
	return updated, mapError(err)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return mapError(s.repo.Delete(ctx, id))
}

func (s *service) fromRequest(ctx context.Context, id string, req PromoRequest) (*PromoCode, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidFrom.After(*req.ValidUntil) {
		return nil, ErrInvalidWindow
	}

	taken, err := s.repo.CodeExists(ctx, code, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateCode
	}

	p := &PromoCode{
		Code:             code,
		DiscountPercent:  req.DiscountPercent,
		DiscountCents:    req.DiscountCents,
		MinPurchaseCents: req.MinPurchaseCents,
		IsActive:         true,
		ValidFrom:        req.ValidFrom,
		ValidUntil:       req.ValidUntil,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		p.Description = &d
	}
	if req.MaxDiscountCents != nil && *req.MaxDiscountCents > 0 {
		p.MaxDiscountCents = req.MaxDiscountCents
	}
	if req.UsageLimit != nil && *req.UsageLimit > 0 {
		p.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p, nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsNotFound(err):
		return ErrPromoNotFound
	}
	if _, ok := db.UniqueViolation(err); ok {
		return ErrDuplicateCode
	}
	return err
}
