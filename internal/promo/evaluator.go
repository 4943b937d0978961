package promo

import (
	"fmt"
	"strings"
	"time"

	"github.com/fuazim/fitcamp/internal/money"
)

type Reason string

const (
	ReasonNotFound    Reason = "not found"
	ReasonInactive    Reason = "inactive"
	ReasonNotYetValid Reason = "not yet valid"
	ReasonExpired     Reason = "expired"
	ReasonUsageLimit  Reason = "usage limit reached"
	ReasonMinPurchase Reason = "minimum purchase not met"
)

// Result is the outcome of evaluating a promo code. Reason is empty when
// Valid is true.
type Result struct {
	Valid         bool
	DiscountCents int64
	Reason        Reason
}

func reject(r Reason) Result {
	return Result{Reason: r}
}

// NormalizeCode is the lookup key for a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate decides whether p applies to subtotalCents at now and computes
// the discount. A nil p is reported as not found. Checks short-circuit in
// a fixed order so the same code always fails for the same reason.
func Evaluate(p *PromoCode, subtotalCents int64, now time.Time) Result {
	if r, ok := eligible(p, now); !ok {
		return r
	}
	if p.MinPurchaseCents > 0 && subtotalCents < p.MinPurchaseCents {
		return reject(ReasonMinPurchase)
	}
	return Result{Valid: true, DiscountCents: Discount(p, subtotalCents)}
}

// EvaluateOpen runs the eligibility checks without a subtotal. The minimum
// purchase is not checked and percent codes report a zero discount.
func EvaluateOpen(p *PromoCode, now time.Time) Result {
	if r, ok := eligible(p, now); !ok {
		return r
	}
	if p.DiscountPercent > 0 {
		return Result{Valid: true}
	}
	return Result{Valid: true, DiscountCents: p.DiscountCents}
}

func eligible(p *PromoCode, now time.Time) (Result, bool) {
	switch {
	case p == nil:
		return reject(ReasonNotFound), false
	case !p.IsActive:
		return reject(ReasonInactive), false
	case p.ValidFrom != nil && now.Before(*p.ValidFrom):
		return reject(ReasonNotYetValid), false
	case p.ValidUntil != nil && now.After(*p.ValidUntil):
		return reject(ReasonExpired), false
	case p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit:
		return reject(ReasonUsageLimit), false
	}
	return Result{}, true
}

// Discount never exceeds subtotalCents.
func Discount(p *PromoCode, subtotalCents int64) int64 {
	if subtotalCents <= 0 {
		return 0
	}
	switch {
	case p.DiscountPercent > 0:
		d := subtotalCents * int64(p.DiscountPercent) / 100
		if p.MaxDiscountCents != nil && d > *p.MaxDiscountCents {
			d = *p.MaxDiscountCents
		}
		return min(d, subtotalCents)
	case p.DiscountCents > 0:
		return min(p.DiscountCents, subtotalCents)
	}
	return 0
}

// Message is the customer facing text for a rejection.
func (r Reason) Message(p *PromoCode) string {
	switch r {
	case ReasonNotFound:
		return "Promo code not found"
	case ReasonInactive:
		return "Promo code is not active"
	case ReasonNotYetValid:
		return "Promo code is not yet valid"
	case ReasonExpired:
		return "Promo code has expired"
	case ReasonUsageLimit:
		return "Promo code has reached usage limit"
	case ReasonMinPurchase:
		if p != nil {
			return fmt.Sprintf("Minimum purchase of %s required", money.Rupiah(p.MinPurchaseCents))
		}
		return "Minimum purchase not met"
	}
	return string(r)
}
