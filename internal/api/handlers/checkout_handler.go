package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/belvieshop/checkout-service/internal/checkout"
	"github.com/belvieshop/checkout-service/internal/domain"
	"github.com/belvieshop/checkout-service/internal/service"
)

// --- Request / Response DTOs ---

type calculateShippingRequest struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Subtotal int64  `json:"subtotal"`
}

type calculateShippingResponse struct {
	Rates []checkout.RateQuote `json:"rates"`
}

type applyPromoRequest struct {
	Code      string `json:"code"`
	Subtotal  int64  `json:"subtotal"`
	ItemCount int    `json:"item_count"`
}

type checkoutRequest struct {
	CustomerName   string             `json:"customer_name"`
	CustomerPhone  string             `json:"customer_phone"`
	City           string             `json:"city"`
	Country        string             `json:"country"`
	Items          []domain.OrderItem `json:"items"`
	PromoCode      string             `json:"promo_code,omitempty"`
	ShippingRateID string             `json:"shipping_rate_id,omitempty"`
}

type orderResponse struct {
	ID               string             `json:"id"`
	CustomerName     string             `json:"customer_name,omitempty"`
	City             string             `json:"city"`
	Country          string             `json:"country"`
	Items            []domain.OrderItem `json:"items"`
	Subtotal         int64              `json:"subtotal"`
	ShippingCost     int64              `json:"shipping_cost"`
	DiscountAmount   int64              `json:"discount_amount"`
	Total            int64              `json:"total"`
	PromoCode        *string            `json:"promo_code,omitempty"`
	ShippingRateID   string             `json:"shipping_rate_id"`
	ShippingRateName string             `json:"shipping_rate_name"`
	Status           string             `json:"status"`
	PaymentStatus    string             `json:"payment_status"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:               o.ID.String(),
		CustomerName:     o.CustomerName,
		City:             o.City,
		Country:          o.Country,
		Items:            o.Items,
		Subtotal:         o.Subtotal,
		ShippingCost:     o.ShippingCost,
		DiscountAmount:   o.DiscountAmount,
		Total:            o.Total,
		PromoCode:        o.PromoCode,
		ShippingRateID:   o.ShippingRateID,
		ShippingRateName: o.ShippingRateName,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
	}
}

// --- Handler struct & constructor ---

type CheckoutHandler struct {
	svc *service.CheckoutService
}

func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// --- Handlers ---

// CalculateShipping handles POST /shipping/calculate
func (h *CheckoutHandler) CalculateShipping(w http.ResponseWriter, r *http.Request) {
	var req calculateShippingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	rates, err := h.svc.QuoteShipping(r.Context(), req.City, req.Country, req.Subtotal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calculateShippingResponse{Rates: rates})
}

// ApplyPromo handles POST /promo/apply. A rejected code is a 200 with the
// reason; the storefront shows it inline and checkout proceeds regardless.
func (h *CheckoutHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req applyPromoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	out, err := h.svc.ApplyPromo(r.Context(), req.Code, req.Subtotal, req.ItemCount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch {
	case out.Reject != nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid": false,
			"error": string(out.Reject.Reason),
		})
	case out.MinOrderNotMet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":             true,
			"min_order_not_met": true,
			"min_order_amount":  out.MinOrderAmount,
		})
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":    true,
			"discount": out.Discount,
		})
	}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	res, err := h.svc.Checkout(r.Context(), service.CheckoutRequest{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		City:           req.City,
		Country:        req.Country,
		Items:          req.Items,
		PromoCode:      req.PromoCode,
		ShippingRateID: req.ShippingRateID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	body := map[string]interface{}{"order": toOrderResponse(res.Order)}
	if res.Promo.Reject != nil {
		body["promo_error"] = string(res.Promo.Reject.Reason)
	}
	if res.Promo.MinOrderNotMet {
		body["min_order_not_met"] = true
		body["min_order_amount"] = res.Promo.MinOrderAmount
	}
	writeJSON(w, http.StatusCreated, body)
}

// GetOrder handles GET /orders/{id}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	order, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": toOrderResponse(order)})
}
