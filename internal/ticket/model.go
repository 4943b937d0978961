package ticket

import "time"

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

type Ticket struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"orderId"`
	StartsAt  time.Time `db:"starts_at" json:"startsAt"`
	EndsAt    time.Time `db:"ends_at" json:"endsAt"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// StatusAt reports the status as seen at now. Stored tickets are never
// flipped to EXPIRED, so an ACTIVE ticket past its end reads as expired.
func (t Ticket) StatusAt(now time.Time) Status {
	if t.Status == StatusActive && now.After(t.EndsAt) {
		return StatusExpired
	}
	return t.Status
}

// Window returns the validity period of a ticket starting at startsAt.
func Window(startsAt time.Time, periodMonths int) (time.Time, time.Time) {
	return startsAt, startsAt.AddDate(0, periodMonths, 0)
}
