package promo

import "time"

type PromoCode struct {
	ID               string     `db:"id" json:"id"`
	Code             string     `db:"code" json:"code"`
	Description      *string    `db:"description" json:"description"`
	DiscountPercent  int        `db:"discount_percent" json:"discountPercent"`
	DiscountCents    int64      `db:"discount_cents" json:"discountCents"`
	MinPurchaseCents int64      `db:"min_purchase_cents" json:"minPurchaseCents"`
	MaxDiscountCents *int64     `db:"max_discount_cents" json:"maxDiscountCents"`
	UsageLimit       *int       `db:"usage_limit" json:"usageLimit"`
	UsedCount        int        `db:"used_count" json:"usedCount"`
	IsActive         bool       `db:"is_active" json:"isActive"`
	ValidFrom        *time.Time `db:"valid_from" json:"validFrom"`
	ValidUntil       *time.Time `db:"valid_until" json:"validUntil"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// PromoRequest replaces every editable field. A zero cap or usage limit
// means "no limit".
type PromoRequest struct {
	Code             string     `json:"code"`
	Description      string     `json:"description"`
	DiscountPercent  int        `json:"discountPercent" binding:"min=0,max=100"`
	DiscountCents    int64      `json:"discountCents" binding:"min=0"`
	MinPurchaseCents int64      `json:"minPurchaseCents" binding:"min=0"`
	MaxDiscountCents *int64     `json:"maxDiscountCents" binding:"omitempty,min=0"`
	UsageLimit       *int       `json:"usageLimit" binding:"omitempty,min=0"`
	IsActive         *bool      `json:"isActive"`
	ValidFrom        *time.Time `json:"validFrom"`
	ValidUntil       *time.Time `json:"validUntil"`
}

type ValidateRequest struct {
	Code          string `json:"code"`
	SubtotalCents *int64 `json:"subtotalCents"`
}

type Preview struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Description     *string `json:"description"`
	DiscountCents   int64   `json:"discountCents"`
	DiscountPercent int     `json:"discountPercent"`
}

type ValidateResponse struct {
	Valid     bool     `json:"valid"`
	PromoCode *Preview `json:"promoCode,omitempty"`
	Error     string   `json:"error,omitempty"`
}
