package dashboard

type OrderCounts struct {
	Total     int64 `db:"total" json:"total"`
	Pending   int64 `db:"pending" json:"pending"`
	Paid      int64 `db:"paid" json:"paid"`
	Cancelled int64 `db:"cancelled" json:"cancelled"`
	Expired   int64 `db:"expired" json:"expired"`
}

type Stats struct {
	Orders          OrderCounts `json:"orders"`
	RevenueCents    int64       `json:"revenueCents"`
	PaymentsWaiting int64       `json:"paymentsWaiting"`
	ActiveTickets   int64       `json:"activeTickets"`
	Gyms            int64       `json:"gyms"`
	Cities          int64       `json:"cities"`
}

// Backlog is the work still waiting on customers or admins.
type Backlog struct {
	PendingOrders   int64 `db:"pending_orders"`
	PaymentsWaiting int64 `db:"payments_waiting"`
	ActiveTickets   int64 `db:"active_tickets"`
}
