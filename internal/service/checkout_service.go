package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/cache"
	"github.com/belvieshop/checkout-service/internal/checkout"
	"github.com/belvieshop/checkout-service/internal/domain"
	"github.com/belvieshop/checkout-service/internal/payment"
	"github.com/belvieshop/checkout-service/internal/repository"
)

// RequestError marks a failure the caller caused; handlers answer 400.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func badRequest(msg string) error { return &RequestError{Msg: msg} }

// CheckoutService composes the pricing engine over the storage layer:
// zone matching, rate selection, promo validation, discount calculation and
// total assembly, in that order.
type CheckoutService struct {
	zones    repository.ZoneRepository
	promos   repository.PromoRepository
	orders   repository.OrderRepository
	cache    *cache.PromoCache
	fallback checkout.DefaultRate
	logger   *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(
	zones repository.ZoneRepository,
	promos repository.PromoRepository,
	orders repository.OrderRepository,
	promoCache *cache.PromoCache,
	fallback checkout.DefaultRate,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		zones:    zones,
		promos:   promos,
		orders:   orders,
		cache:    promoCache,
		fallback: fallback,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the validation clock, for tests.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// QuoteShipping returns the shipping options for a destination and subtotal.
// An unmatched destination quietly falls back to the default rate.
func (s *CheckoutService) QuoteShipping(ctx context.Context, city, country string, subtotal int64) ([]checkout.RateQuote, error) {
	if subtotal < 0 {
		return nil, badRequest("subtotal must not be negative")
	}
	zones, err := s.zones.ListActiveZones(ctx)
	if err != nil {
		return nil, err
	}
	zone := checkout.MatchZone(zones, city, country)
	return checkout.SelectRates(zone, subtotal, s.fallback), nil
}

// PromoOutcome is the result of applying a promo code to a cart. Exactly one
// of three things is true: the code was rejected (Reject set), the code is
// valid but below its minimum order (MinOrderNotMet), or a discount applies.
type PromoOutcome struct {
	Promo          *domain.PromoCode
	Discount       *checkout.Discount
	Reject         *checkout.ValidationError
	MinOrderNotMet bool
	MinOrderAmount int64
}

// ApplyPromo validates a promo code against the cart and computes its
// discount. Storage failures are the only errors; rejected codes come back
// in the outcome.
func (s *CheckoutService) ApplyPromo(ctx context.Context, code string, subtotal int64, itemCount int) (PromoOutcome, error) {
	promo, err := s.lookupPromo(ctx, code)
	if err != nil {
		return PromoOutcome{}, err
	}

	if verr := checkout.ValidatePromo(code, promo, s.now()); verr != nil {
		return PromoOutcome{Reject: verr}, nil
	}

	discount := checkout.CalculateDiscount(promo, subtotal, itemCount)
	if discount == nil {
		return PromoOutcome{
			Promo:          promo,
			MinOrderNotMet: true,
			MinOrderAmount: *promo.MinOrderAmount,
		}, nil
	}
	return PromoOutcome{Promo: promo, Discount: discount}, nil
}

func (s *CheckoutService) lookupPromo(ctx context.Context, code string) (*domain.PromoCode, error) {
	normalized := checkout.NormalizeCode(code)
	if normalized == "" {
		return nil, nil
	}
	if p, ok := s.cache.Get(normalized); ok {
		return p, nil
	}
	p, err := s.promos.GetActiveByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if p != nil {
		s.cache.Set(normalized, p)
	}
	return p, nil
}

// CheckoutRequest is a cart ready to become an order.
type CheckoutRequest struct {
	CustomerName   string
	CustomerPhone  string
	City           string
	Country        string
	Items          []domain.OrderItem
	PromoCode      string
	ShippingRateID string
}

// CheckoutResult carries the persisted order plus what happened to the promo
// code, if one was supplied. An unusable code never blocks checkout; the
// order simply proceeds undiscounted and the outcome says why.
type CheckoutResult struct {
	Order *domain.Order
	Promo PromoOutcome
}

// Checkout prices the cart, persists the order as pending and returns it.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	if len(req.Items) == 0 {
		return nil, badRequest("cart is empty")
	}
	if strings.TrimSpace(req.City) == "" && strings.TrimSpace(req.Country) == "" {
		return nil, badRequest("destination city or country is required")
	}

	var subtotal int64
	itemCount := 0
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, badRequest("item quantity must be positive")
		}
		if it.Price < 0 {
			return nil, badRequest("item price must not be negative")
		}
		subtotal += it.Price * int64(it.Quantity)
		itemCount += it.Quantity
	}

	rates, err := s.QuoteShipping(ctx, req.City, req.Country, subtotal)
	if err != nil {
		return nil, err
	}
	rate, err := pickRate(rates, req.ShippingRateID)
	if err != nil {
		return nil, err
	}

	var outcome PromoOutcome
	if strings.TrimSpace(req.PromoCode) != "" {
		outcome, err = s.ApplyPromo(ctx, req.PromoCode, subtotal, itemCount)
		if err != nil {
			return nil, err
		}
	}

	totals := checkout.AssembleTotal(subtotal, rate, outcome.Discount)

	order := &domain.Order{
		ID:               uuid.New(),
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerPhone:    strings.TrimSpace(req.CustomerPhone),
		City:             strings.TrimSpace(req.City),
		Country:          strings.TrimSpace(req.Country),
		Items:            req.Items,
		Subtotal:         totals.Subtotal,
		ShippingCost:     totals.ShippingCost,
		DiscountAmount:   totals.DiscountAmount,
		Total:            totals.Total,
		ShippingRateID:   rate.ID,
		ShippingRateName: rate.Name,
		Status:           domain.OrderStatusPending,
		PaymentStatus:    domain.PaymentPending,
	}
	if outcome.Discount != nil {
		code := outcome.Promo.Code
		id := outcome.Promo.ID
		order.PromoCode = &code
		order.PromoCodeID = &id
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.Int64("total", order.Total),
		zap.String("rate", rate.ID),
		zap.Bool("promo_applied", outcome.Discount != nil),
	)
	return &CheckoutResult{Order: order, Promo: outcome}, nil
}

func pickRate(rates []checkout.RateQuote, rateID string) (checkout.RateQuote, error) {
	if rateID == "" {
		// cheapest (rates arrive sorted ascending)
		return rates[0], nil
	}
	for _, r := range rates {
		if r.ID == rateID {
			return r, nil
		}
	}
	return checkout.RateQuote{}, badRequest("shipping rate " + rateID + " is not available for this destination")
}

// GetOrder fetches an order by id.
func (s *CheckoutService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// HandlePaymentEvent reconciles a gateway webhook onto the order. The
// forward-only transition in the store makes replays no-ops, which in turn
// makes the promo usage consumption below exactly-once: it only runs the
// first time an order reaches paid.
func (s *CheckoutService) HandlePaymentEvent(ctx context.Context, orderID uuid.UUID, gateway, rawStatus, ref string) (domain.PaymentStatus, bool, error) {
	status, err := payment.Reconcile(gateway, rawStatus)
	if err != nil {
		return "", false, badRequest(err.Error())
	}

	updated, err := s.orders.SetPaymentStatus(ctx, orderID, status, strings.ToLower(gateway), ref)
	if err != nil {
		return "", false, err
	}
	if !updated {
		s.logger.Info("Payment event ignored",
			zap.String("order_id", orderID.String()),
			zap.String("gateway", gateway),
			zap.String("status", string(status)),
		)
		return status, false, nil
	}

	if status == domain.PaymentPaid {
		if err := s.consumePromoUsage(ctx, orderID); err != nil {
			// The order is paid either way; usage bookkeeping must not fail
			// the webhook.
			s.logger.Error("Failed to consume promo usage", zap.Error(err),
				zap.String("order_id", orderID.String()))
		}
	}
	return status, true, nil
}

func (s *CheckoutService) consumePromoUsage(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PromoCodeID == nil {
		return nil
	}

	consumed, err := s.promos.ConsumeUsage(ctx, *order.PromoCodeID)
	if err != nil {
		return err
	}
	if !consumed {
		s.logger.Warn("Promo usage cap reached after payment",
			zap.String("order_id", orderID.String()),
			zap.String("promo_id", order.PromoCodeID.String()))
	}
	if order.PromoCode != nil {
		s.cache.Invalidate(checkout.NormalizeCode(*order.PromoCode))
	}
	return nil
}

// CreateZone stores a new shipping zone.
func (s *CheckoutService) CreateZone(ctx context.Context, zone *domain.ShippingZone) error {
	if strings.TrimSpace(zone.Name) == "" {
		return badRequest("zone name is required")
	}
	if len(zone.Countries) == 0 && len(zone.Cities) == 0 {
		return badRequest("zone must cover at least one country or city")
	}
	return s.zones.CreateZone(ctx, zone)
}

// CreateRate stores a new shipping rate under a zone.
func (s *CheckoutService) CreateRate(ctx context.Context, rate *domain.ShippingRate) error {
	if strings.TrimSpace(rate.Name) == "" {
		return badRequest("rate name is required")
	}
	if rate.Price < 0 {
		return badRequest("rate price must not be negative")
	}
	return s.zones.CreateRate(ctx, rate)
}

// CreatePromo stores a new promo code. The code is normalized before insert
// so lookups stay case-insensitive.
func (s *CheckoutService) CreatePromo(ctx context.Context, promo *domain.PromoCode) error {
	promo.Code = checkout.NormalizeCode(promo.Code)
	if promo.Code == "" {
		return badRequest("promo code is required")
	}
	if !promo.DiscountType.IsValid() {
		return badRequest("unknown discount type " + string(promo.DiscountType))
	}
	if promo.DiscountValue < 0 {
		return badRequest("discount value must not be negative")
	}
	if promo.DiscountType == domain.DiscountPercentage && promo.DiscountValue > 100 {
		return badRequest("percentage discount cannot exceed 100")
	}
	if promo.ValidFrom.IsZero() {
		promo.ValidFrom = s.now()
	}
	if err := s.promos.Create(ctx, promo); err != nil {
		return err
	}
	s.cache.Invalidate(promo.Code)
	return nil
}

// ListPromos returns all promo codes, newest first.
func (s *CheckoutService) ListPromos(ctx context.Context) ([]domain.PromoCode, error) {
	return s.promos.List(ctx)
}
