package payment

import "time"

type Status string

const (
	StatusWaitingProof Status = "WAITING_PROOF"
	StatusSuccess      Status = "SUCCESS"
	StatusFailed       Status = "FAILED"
)

type Payment struct {
	ID          string    `db:"id" json:"id"`
	OrderID     string    `db:"order_id" json:"orderId"`
	Status      Status    `db:"status" json:"status"`
	Method      string    `db:"method" json:"method"`
	AmountCents int64     `db:"amount_cents" json:"amountCents"`
	ProofURL    *string   `db:"proof_url" json:"proofUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	Order       *OrderRef `db:"-" json:"order,omitempty"`

	BookingCode   *string `db:"booking_code" json:"-"`
	OrderStatus   *string `db:"order_status" json:"-"`
	CustomerName  *string `db:"customer_name" json:"-"`
	CustomerEmail *string `db:"customer_email" json:"-"`
	CustomerPhone *string `db:"customer_phone" json:"-"`
	PlanName      *string `db:"plan_name" json:"-"`
}

type OrderRef struct {
	BookingCode   string  `json:"bookingCode"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone"`
	PlanName      string  `json:"planName"`
}

type SubmitRequest struct {
	OrderID  string `json:"orderId" validate:"required"`
	Method   string `json:"method" validate:"required"`
	ProofURL string `json:"proofUrl" validate:"required,url"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}
