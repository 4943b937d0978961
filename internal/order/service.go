package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"
	"github.com/fuazim/fitcamp/internal/plan"
	"github.com/fuazim/fitcamp/internal/promo"
	"github.com/fuazim/fitcamp/internal/qr"
	"github.com/fuazim/fitcamp/internal/ticket"
	"github.com/fuazim/fitcamp/internal/user"

	"github.com/samber/lo"
)

var (
	ErrMissingFields        = errors.New("fullName, phoneNumber, email and planId are required")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrGymNotFound          = errors.New("gym not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrLookupFieldsRequired = errors.New("booking code and phone number are required")
	ErrInvalidLookup        = errors.New("invalid booking code or phone number")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrBookingCodeConflict  = errors.New("booking code already taken")
)

type PlanFinder interface {
	GetByID(ctx context.Context, id string) (*plan.Plan, error)
}

type CustomerStore interface {
	UpsertCustomer(ctx context.Context, name, email, phone string) (*user.User, error)
}

type PromoApplier interface {
	Apply(ctx context.Context, code string, subtotalCents int64) (*promo.PromoCode, promo.Result, error)
}

type TicketReader interface {
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]ticket.Ticket, error)
}

type BookingCodes interface {
	Allocate(ctx context.Context) string
}

type Mailer interface {
	SendOrderCreated(ctx context.Context, to, name, bookingCode, planName string, totalCents int64) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Lookup(ctx context.Context, req LookupRequest) (*Order, error)
	List(ctx context.Context, status string) ([]Order, error)
	QR(ctx context.Context, id string) ([]byte, error)
}

// Deps are the collaborators of the order service. Mailer may be nil.
type Deps struct {
	Codes   BookingCodes
	Plans   PlanFinder
	Users   CustomerStore
	Promos  PromoApplier
	Tickets TicketReader
	Tx      db.TxManager
	Mailer  Mailer
	Now     func() time.Time
}

type service struct {
	repo Repository
	Deps
}

func NewService(repo Repository, deps Deps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{repo: repo, Deps: deps}
}

// Create places a PENDING order. The customer upsert, promo usage and order
// insert commit together. A promo code that does not apply is dropped and
// the order is placed at full price.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	req = normalize(req)
	if req.FullName == "" || req.PhoneNumber == "" || req.Email == "" || req.PlanID == "" {
		return nil, ErrMissingFields
	}

	p, err := s.Plans.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	var (
		created  *Order
		customer *user.User
	)
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		customer, err = s.Users.UpsertCustomer(ctx, req.FullName, req.Email, req.PhoneNumber)
		if err != nil {
			return err
		}

		o := &Order{
			BookingCode:   s.Codes.Allocate(ctx),
			UserID:        customer.ID,
			PlanID:        p.ID,
			GymID:         lo.EmptyableToPtr(req.GymID),
			Status:        StatusPending,
			SubtotalCents: p.PriceCents,
			PaymentMethod: lo.CoalesceOrEmpty(strings.ToUpper(req.PaymentMethod), PaymentMethodManual),
		}

		if req.PromoCode != "" {
			code, res, err := s.Promos.Apply(ctx, req.PromoCode, o.SubtotalCents)
			if err != nil {
				return err
			}
			if res.Valid {
				o.PromoCodeID = &code.ID
				o.DiscountCents = res.DiscountCents
			}
		}
		o.TotalCents = o.SubtotalCents - o.DiscountCents

		created, err = s.repo.Create(ctx, o)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}

	created.User = &Customer{ID: customer.ID, Name: customer.Name, Email: customer.Email, Phone: customer.Phone}
	created.Plan = &PlanRef{ID: p.ID, Name: p.Name, PriceCents: p.PriceCents, Currency: p.Currency, PeriodMonths: p.PeriodMonths}
	metrics.RecordOrder(created.PaymentMethod, created.PromoCodeID != nil)
	logger.Info("order created", "bookingCode", created.BookingCode, "totalCents", created.TotalCents)

	if s.Mailer != nil {
		if err := s.Mailer.SendOrderCreated(ctx, customer.Email, customer.Name, created.BookingCode, p.Name, created.TotalCents); err != nil {
			logger.Error("failed to queue order email", "bookingCode", created.BookingCode, "error", err)
		}
	}

	return created, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.attachTickets(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Lookup does not tell a wrong phone number apart from a missing customer.
func (s *service) Lookup(ctx context.Context, req LookupRequest) (*Order, error) {
	code := strings.ToUpper(strings.TrimSpace(req.BookingCode))
	phone := strings.TrimSpace(req.PhoneNumber)
	if code == "" || phone == "" {
		return nil, ErrLookupFieldsRequired
	}

	o, err := s.repo.FindByBookingCode(ctx, code)
	if err != nil {
		return nil, mapError(err)
	}
	if o.User == nil || lo.FromPtr(o.User.Phone) != phone {
		return nil, ErrInvalidLookup
	}

	if err := s.attachTickets(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) List(ctx context.Context, status string) ([]Order, error) {
	var filter Status
	if strings.TrimSpace(status) != "" {
		st, ok := ParseStatus(status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		filter = st
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ptrs := make([]*Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	if err := s.attachTickets(ctx, ptrs); err != nil {
		return nil, err
	}
	return orders, nil
}

// QR renders the booking code, which is what the front desk scans.
func (s *service) QR(ctx context.Context, id string) ([]byte, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return qr.PNG(o.BookingCode, qr.DefaultSize)
}

func (s *service) attachTickets(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 || s.Tickets == nil {
		return nil
	}

	ids := lo.Map(orders, func(o *Order, _ int) string { return o.ID })
	tickets, err := s.Tickets.ListByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	now := s.Now()
	byOrder := lo.KeyBy(tickets, func(t ticket.Ticket) string { return t.OrderID })
	for _, o := range orders {
		if t, ok := byOrder[o.ID]; ok {
			t.Status = t.StatusAt(now)
			o.Ticket = &t
		}
	}
	return nil
}

func normalize(req CreateRequest) CreateRequest {
	req.FullName = strings.TrimSpace(req.FullName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.PlanID = strings.TrimSpace(req.PlanID)
	req.GymID = strings.TrimSpace(req.GymID)
	req.PromoCode = strings.TrimSpace(req.PromoCode)
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	return req
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsNotFound(err):
		return ErrOrderNotFound
	case db.ForeignKeyViolation(err):
		return ErrGymNotFound
	}
	if constraint, ok := db.UniqueViolation(err); ok && db.ConstraintField(constraint) == "code" {
		return ErrBookingCodeConflict
	}
	return err
}
