package checkout

import (
	"strings"
	"time"

	"github.com/belvieshop/checkout-service/internal/domain"
)

// RejectReason codes a promo validation failure. The strings go to the
// storefront verbatim.
type RejectReason string

const (
	ReasonEmptyCode    RejectReason = "EMPTY_CODE"
	ReasonNotFound     RejectReason = "NOT_FOUND"
	ReasonNotYetValid  RejectReason = "NOT_YET_VALID"
	ReasonExpired      RejectReason = "EXPIRED"
	ReasonUsesExceeded RejectReason = "USES_EXCEEDED"
)

// ValidationError rejects a promo code with a reason the caller can surface.
type ValidationError struct {
	Reason RejectReason
}

func (e *ValidationError) Error() string {
	return "promo code rejected: " + string(e.Reason)
}

// NormalizeCode canonicalizes a raw promo code for lookup.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidatePromo checks a promo code against its temporal and usage
// constraints. The checks run in a fixed order so the most relevant reason is
// surfaced: empty code, unknown code, not yet valid, expired, usage cap.
// promo is the lookup result for the normalized code, nil when absent.
//
// The minimum order amount is deliberately not checked here: a code below its
// minimum stays valid and simply contributes no discount (see
// CalculateDiscount).
func ValidatePromo(rawCode string, promo *domain.PromoCode, now time.Time) *ValidationError {
	if NormalizeCode(rawCode) == "" {
		return &ValidationError{Reason: ReasonEmptyCode}
	}
	if promo == nil || !promo.IsActive {
		return &ValidationError{Reason: ReasonNotFound}
	}
	if now.Before(promo.ValidFrom) {
		return &ValidationError{Reason: ReasonNotYetValid}
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return &ValidationError{Reason: ReasonExpired}
	}
	if promo.MaxUses != nil && promo.UsesCount >= *promo.MaxUses {
		return &ValidationError{Reason: ReasonUsesExceeded}
	}
	return nil
}
