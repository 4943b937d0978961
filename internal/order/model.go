package order

import (
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/ticket"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

const PaymentMethodManual = "MANUAL"

// ParseStatus accepts the status names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusPaid, StatusCancelled, StatusExpired:
		return st, true
	}
	return "", false
}

type Order struct {
	ID            string         `db:"id" json:"id"`
	BookingCode   string         `db:"booking_code" json:"bookingCode"`
	UserID        string         `db:"user_id" json:"userId"`
	PlanID        string         `db:"plan_id" json:"planId"`
	GymID         *string        `db:"gym_id" json:"gymId"`
	PromoCodeID   *string        `db:"promo_code_id" json:"promoCodeId"`
	Status        Status         `db:"status" json:"status"`
	SubtotalCents int64          `db:"subtotal_cents" json:"subtotalCents"`
	DiscountCents int64          `db:"discount_cents" json:"discountCents"`
	TotalCents    int64          `db:"total_cents" json:"totalCents"`
	PaymentMethod string         `db:"payment_method" json:"paymentMethod"`
	PaidAt        *time.Time     `db:"paid_at" json:"paidAt"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
	User          *Customer      `db:"-" json:"user,omitempty"`
	Plan          *PlanRef       `db:"-" json:"plan,omitempty"`
	Gym           *GymRef        `db:"-" json:"gym,omitempty"`
	Payment       *PaymentRef    `db:"-" json:"payment"`
	Ticket        *ticket.Ticket `db:"-" json:"ticket"`
}

type Customer struct {
	ID    string  `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Email string  `db:"email" json:"email"`
	Phone *string `db:"phone" json:"phone"`
}

type PlanRef struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	PriceCents   int64  `db:"price_cents" json:"priceCents"`
	Currency     string `db:"currency" json:"currency"`
	PeriodMonths int    `db:"period_months" json:"periodMonths"`
}

type GymRef struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Slug    string `db:"slug" json:"slug"`
	Address string `db:"address" json:"address"`
}

type PaymentRef struct {
	ID          string    `db:"id" json:"id"`
	OrderID     string    `db:"order_id" json:"-"`
	Status      string    `db:"status" json:"status"`
	Method      string    `db:"method" json:"method"`
	AmountCents int64     `db:"amount_cents" json:"amountCents"`
	ProofURL    *string   `db:"proof_url" json:"proofUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PlanID        string `json:"planId" validate:"required"`
	GymID         string `json:"gymId"`
	PromoCode     string `json:"promoCode"`
	PaymentMethod string `json:"paymentMethod"`
}

type LookupRequest struct {
	BookingCode string `json:"bookingCode"`
	PhoneNumber string `json:"phoneNumber"`
}
