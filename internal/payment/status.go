// Package payment maps gateway webhook payloads onto the order's canonical
// payment state. Each supported gateway reports status with its own
// vocabulary and casing; everything funnels through one lookup table so a
// new gateway is one map entry, not a new code path.
package payment

import (
	"fmt"
	"strings"

	"github.com/belvieshop/checkout-service/internal/domain"
)

// Gateway identifiers as they appear in webhook URLs.
const (
	GatewayLygos     = "lygos"
	GatewayKkiapay   = "kkiapay"
	GatewayGeniusPay = "geniuspay"
)

var statusTable = map[string]map[string]domain.PaymentStatus{
	GatewayLygos: {
		"completed":  domain.PaymentPaid,
		"success":    domain.PaymentPaid,
		"pending":    domain.PaymentPending,
		"processing": domain.PaymentPending,
		"failed":     domain.PaymentFailed,
		"cancelled":  domain.PaymentFailed,
		"expired":    domain.PaymentFailed,
	},
	GatewayKkiapay: {
		"success":  domain.PaymentPaid,
		"pending":  domain.PaymentPending,
		"failed":   domain.PaymentFailed,
		"declined": domain.PaymentFailed,
	},
	GatewayGeniusPay: {
		"paid":             domain.PaymentPaid,
		"confirmed":        domain.PaymentPaid,
		"awaiting_payment": domain.PaymentPending,
		"initiated":        domain.PaymentPending,
		"failed":           domain.PaymentFailed,
		"rejected":         domain.PaymentFailed,
	},
}

// KnownGateway reports whether we accept webhooks from the named gateway.
func KnownGateway(gateway string) bool {
	_, ok := statusTable[strings.ToLower(strings.TrimSpace(gateway))]
	return ok
}

// Reconcile translates a gateway's raw status string into the canonical
// payment status. Gateway names and statuses are matched case-insensitively
// (KkiaPay shouts its statuses in uppercase). Unknown gateways or statuses
// are an error; the webhook handler answers 400 rather than guessing.
func Reconcile(gateway, rawStatus string) (domain.PaymentStatus, error) {
	table, ok := statusTable[strings.ToLower(strings.TrimSpace(gateway))]
	if !ok {
		return "", fmt.Errorf("unknown payment gateway %q", gateway)
	}
	status, ok := table[strings.ToLower(strings.TrimSpace(rawStatus))]
	if !ok {
		return "", fmt.Errorf("unknown %s payment status %q", gateway, rawStatus)
	}
	return status, nil
}
