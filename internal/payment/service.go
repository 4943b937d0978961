package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"
	"github.com/fuazim/fitcamp/internal/money"
	"github.com/fuazim/fitcamp/internal/notify"
	"github.com/fuazim/fitcamp/internal/order"
	"github.com/fuazim/fitcamp/internal/ticket"

	"github.com/samber/lo"
)

var (
	ErrMissingFields    = errors.New("orderId, method and proofUrl are required")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadyApproved  = errors.New("payment already approved")
	ErrDuplicatePayment = errors.New("payment already submitted for this order")
	ErrNotWaitingProof  = errors.New("payment is not waiting for review")
	ErrOrderNotPending  = errors.New("order is not pending")
	ErrInvalidStatus    = errors.New("invalid payment status")
)

type OrderStore interface {
	FindByID(ctx context.Context, id string) (*order.Order, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
}

type TicketStore interface {
	Create(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, error)
}

type Mailer interface {
	SendPaymentApproved(ctx context.Context, to, name, bookingCode string, startsAt, endsAt time.Time) error
	SendPaymentRejected(ctx context.Context, to, name, bookingCode, reason string) error
}

type Service interface {
	// Submit returns created=true when this is the first proof for the order.
	Submit(ctx context.Context, req SubmitRequest) (p *Payment, created bool, err error)
	Approve(ctx context.Context, id string) (*Payment, error)
	Reject(ctx context.Context, id, reason string) (*Payment, error)
	List(ctx context.Context, status string) ([]Payment, error)
}

// Deps are the collaborators of the payment service. Mailer and Notifier
// may be nil.
type Deps struct {
	Orders   OrderStore
	Tickets  TicketStore
	Tx       db.TxManager
	Mailer   Mailer
	Notifier notify.Notifier
	Now      func() time.Time
}

type service struct {
	repo Repository
	Deps
}

func NewService(repo Repository, deps Deps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Noop{}
	}
	return &service{repo: repo, Deps: deps}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Payment, bool, error) {
	orderID := strings.TrimSpace(req.OrderID)
	method := strings.TrimSpace(req.Method)
	proofURL := strings.TrimSpace(req.ProofURL)
	if orderID == "" || method == "" || proofURL == "" {
		return nil, false, ErrMissingFields
	}

	var (
		o       *order.Order
		saved   *Payment
		created bool
	)
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.Orders.FindByID(ctx, orderID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrOrderNotFound
			}
			return err
		}

		existing, err := s.repo.FindByOrderID(ctx, orderID)
		switch {
		case err == nil:
			if existing.Status == StatusSuccess {
				return ErrAlreadyApproved
			}
			saved, err = s.repo.Resubmit(ctx, existing.ID, method, proofURL)
			return err
		case db.IsNotFound(err):
			created = true
			saved, err = s.repo.Create(ctx, &Payment{
				OrderID:     orderID,
				Method:      method,
				AmountCents: o.TotalCents,
				ProofURL:    &proofURL,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, mapError(err)
	}

	logger.Info("payment proof submitted", "paymentId", saved.ID, "bookingCode", o.BookingCode, "created", created)
	s.Notifier.Notify(fmt.Sprintf("New payment proof\nBooking: %s\nCustomer: %s\nAmount: %s\nMethod: %s",
		o.BookingCode, customerName(o), money.Rupiah(saved.AmountCents), saved.Method))

	return saved, created, nil
}

// Approve settles a payment under review: the payment, its order and a new
// ticket are written in one transaction.
func (s *service) Approve(ctx context.Context, id string) (*Payment, error) {
	now := s.Now()
	var (
		o      *order.Order
		issued *ticket.Ticket
	)

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.lockWaiting(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.SetStatus(ctx, p.ID, StatusSuccess); err != nil {
			return err
		}

		o, err = s.Orders.FindByID(ctx, p.OrderID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Plan == nil {
			return fmt.Errorf("order %s has no plan", o.ID)
		}
		if err := s.Orders.MarkPaid(ctx, o.ID, now); err != nil {
			if db.IsNotFound(err) {
				return ErrOrderNotPending
			}
			return err
		}

		startsAt, endsAt := ticket.Window(now, o.Plan.PeriodMonths)
		issued, err = s.Tickets.Create(ctx, &ticket.Ticket{
			OrderID:  o.ID,
			StartsAt: startsAt,
			EndsAt:   endsAt,
			Status:   ticket.StatusActive,
		})
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	metrics.RecordPaymentDecision("approved")
	metrics.RecordRevenue(p.AmountCents)
	logger.Info("payment approved", "paymentId", id, "bookingCode", o.BookingCode, "ticketId", issued.ID)

	if s.Mailer != nil && o.User != nil {
		if err := s.Mailer.SendPaymentApproved(ctx, o.User.Email, o.User.Name, o.BookingCode, issued.StartsAt, issued.EndsAt); err != nil {
			logger.Error("failed to queue approval email", "paymentId", id, "error", err)
		}
	}
	s.Notifier.Notify(fmt.Sprintf("Payment approved\nBooking: %s\nValid until: %s",
		o.BookingCode, issued.EndsAt.Format("02 Jan 2006")))

	return p, nil
}

// Reject only marks the payment. The reason is passed on to the customer
// email and the log, it is not stored.
func (s *service) Reject(ctx context.Context, id, reason string) (*Payment, error) {
	reason = strings.TrimSpace(reason)

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.lockWaiting(ctx, id)
		if err != nil {
			return err
		}
		return s.repo.SetStatus(ctx, p.ID, StatusFailed)
	})
	if err != nil {
		return nil, mapError(err)
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	metrics.RecordPaymentDecision("rejected")
	logger.Info("payment rejected", "paymentId", id, "reason", reason)

	if s.Mailer != nil && p.Order != nil {
		if err := s.Mailer.SendPaymentRejected(ctx, p.Order.CustomerEmail, p.Order.CustomerName, p.Order.BookingCode, reason); err != nil {
			logger.Error("failed to queue rejection email", "paymentId", id, "error", err)
		}
	}

	return p, nil
}

func (s *service) List(ctx context.Context, status string) ([]Payment, error) {
	var filter Status
	if st := Status(strings.ToUpper(strings.TrimSpace(status))); st != "" {
		switch st {
		case StatusWaitingProof, StatusSuccess, StatusFailed:
			filter = st
		default:
			return nil, ErrInvalidStatus
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *service) lockWaiting(ctx context.Context, id string) (*Payment, error) {
	p, err := s.repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusWaitingProof {
		return nil, ErrNotWaitingProof
	}
	return p, nil
}

func customerName(o *order.Order) string {
	if o.User == nil {
		return "-"
	}
	return lo.CoalesceOrEmpty(o.User.Name, o.User.Email)
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsNotFound(err):
		return ErrPaymentNotFound
	}
	if _, ok := db.UniqueViolation(err); ok {
		return ErrDuplicatePayment
	}
	return err
}
