package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/belvieshop/checkout-service/internal/domain"
	"github.com/belvieshop/checkout-service/internal/service"
)

// --- Request DTOs ---

type createZoneRequest struct {
	Name      string   `json:"name"`
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

type createRateRequest struct {
	Name                  string `json:"name"`
	Price                 int64  `json:"price"`
	FreeShippingThreshold *int64 `json:"free_shipping_threshold,omitempty"`
	MinOrderAmount        *int64 `json:"min_order_amount,omitempty"`
	DeliveryEstimate      string `json:"delivery_estimate,omitempty"`
	IsActive              *bool  `json:"is_active,omitempty"`
}

type createPromoRequest struct {
	Code              string `json:"code"`
	DiscountType      string `json:"discount_type"`
	DiscountValue     int64  `json:"discount_value"`
	MinOrderAmount    *int64 `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *int64 `json:"max_discount_amount,omitempty"`
	BuyQuantity       *int   `json:"buy_quantity,omitempty"`
	GetQuantity       *int   `json:"get_quantity,omitempty"`
	ValidFrom         string `json:"valid_from,omitempty"` // RFC3339
	ValidUntil        string `json:"valid_until,omitempty"`
	MaxUses           *int   `json:"max_uses,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

type AdminHandler struct {
	svc *service.CheckoutService
}

func NewAdminHandler(svc *service.CheckoutService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// CreateZone handles POST /admin/zones
func (h *AdminHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	zone := &domain.ShippingZone{
		Name:      req.Name,
		Countries: req.Countries,
		Cities:    req.Cities,
		IsActive:  activeOrDefault(req.IsActive),
	}
	if err := h.svc.CreateZone(r.Context(), zone); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": zone.ID.String()})
}

// CreateRate handles POST /admin/zones/{id}/rates
func (h *AdminHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	zoneID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid zone id"})
		return
	}

	var req createRateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	rate := &domain.ShippingRate{
		ZoneID:                zoneID,
		Name:                  req.Name,
		Price:                 req.Price,
		FreeShippingThreshold: req.FreeShippingThreshold,
		MinOrderAmount:        req.MinOrderAmount,
		DeliveryEstimate:      req.DeliveryEstimate,
		IsActive:              activeOrDefault(req.IsActive),
	}
	if err := h.svc.CreateRate(r.Context(), rate); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": rate.ID.String()})
}

// CreatePromo handles POST /admin/promo-codes
func (h *AdminHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req createPromoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	promo := &domain.PromoCode{
		Code:              req.Code,
		DiscountType:      domain.DiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		BuyQuantity:       req.BuyQuantity,
		GetQuantity:       req.GetQuantity,
		MaxUses:           req.MaxUses,
		IsActive:          activeOrDefault(req.IsActive),
	}
	if req.ValidFrom != "" {
		t, err := time.Parse(time.RFC3339, req.ValidFrom)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid valid_from; use RFC3339"})
			return
		}
		promo.ValidFrom = t
	}
	if req.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid valid_until; use RFC3339"})
			return
		}
		promo.ValidUntil = &t
	}

	if err := h.svc.CreatePromo(r.Context(), promo); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": promo.ID.String(), "code": promo.Code})
}

// ListPromos handles GET /admin/promo-codes
func (h *AdminHandler) ListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.svc.ListPromos(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(promos))
	for _, p := range promos {
		out = append(out, map[string]interface{}{
			"id":            p.ID.String(),
			"code":          p.Code,
			"discount_type": string(p.DiscountType),
			"uses_count":    p.UsesCount,
			"max_uses":      p.MaxUses,
			"is_active":     p.IsActive,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"promo_codes": out})
}
