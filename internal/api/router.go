package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/api/handlers"
	"github.com/belvieshop/checkout-service/internal/api/middleware"
	"github.com/belvieshop/checkout-service/internal/service"
)

// NewRouter builds the HTTP router for the checkout-service
func NewRouter(svc *service.CheckoutService, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Logger(logger))

	checkoutHandler := handlers.NewCheckoutHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)
	webhookHandler := handlers.NewWebhookHandler(svc)

	// Storefront endpoints
	r.Post("/shipping/calculate", checkoutHandler.CalculateShipping)
	r.Post("/promo/apply", checkoutHandler.ApplyPromo)
	r.Post("/checkout", checkoutHandler.Checkout)
	r.Get("/orders/{id}", checkoutHandler.GetOrder)

	// Payment gateways call back here
	r.Post("/webhooks/payment/{gateway}", webhookHandler.PaymentWebhook)

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Post("/zones", adminHandler.CreateZone)
		r.Post("/zones/{id}/rates", adminHandler.CreateRate)
		r.Post("/promo-codes", adminHandler.CreatePromo)
		r.Get("/promo-codes", adminHandler.ListPromos)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
