package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/belvieshop/checkout-service/internal/payment"
	"github.com/belvieshop/checkout-service/internal/service"
)

type paymentWebhookRequest struct {
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type WebhookHandler struct {
	svc *service.CheckoutService
}

func NewWebhookHandler(svc *service.CheckoutService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// PaymentWebhook handles POST /webhooks/payment/{gateway}. Replays answer
// 200 with applied=false so gateways stop retrying.
func (h *WebhookHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	gateway := chi.URLParam(r, "gateway")
	if !payment.KnownGateway(gateway) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown gateway"})
		return
	}

	var req paymentWebhookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order_id"})
		return
	}

	status, applied, err := h.svc.HandlePaymentEvent(r.Context(), orderID, gateway, req.Status, req.TransactionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payment_status": string(status),
		"applied":        applied,
	})
}
