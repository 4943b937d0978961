package plan

import "time"

type Plan struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description"`
	PriceCents   int64     `db:"price_cents" json:"priceCents"`
	Currency     string    `db:"currency" json:"currency"`
	PeriodMonths int       `db:"period_months" json:"periodMonths"`
	ImageURL     *string   `db:"image_url" json:"imageUrl"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	SortOrder    int       `db:"sort_order" json:"sortOrder"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
	Features     []Feature `db:"-" json:"features"`
}

type Feature struct {
	ID        string `db:"id" json:"id"`
	PlanID    string `db:"plan_id" json:"-"`
	Text      string `db:"text" json:"text"`
	SortOrder int    `db:"sort_order" json:"-"`
}

// PublicPlan is the storefront shape of a plan.
type PublicPlan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        float64         `json:"price"`
	PriceCents   int64           `json:"priceCents"`
	Currency     string          `json:"currency"`
	PeriodMonths int             `json:"periodMonths"`
	ImageURL     *string         `json:"imageUrl"`
	Features     []PublicFeature `json:"features"`
}

type PublicFeature struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
