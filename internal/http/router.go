package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Banks    *BankHandler
	Checkout *CheckoutHandler
	Metrics  *ServerMetrics
	Health   http.HandlerFunc
}

// NewRouter mounts every route. The returned handler is instrumented with otelhttp.
func NewRouter(h Handlers, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	if h.Metrics != nil {
		r.Use(MetricsMiddleware(h.Metrics))
	}
	r.Use(middleware.Timeout(requestTimeout))

	health := h.Health
	if health == nil {
		health = func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		}
	}
	r.Get("/health", health)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	r.Route("/api/v1/clients/{client_id}", func(r chi.Router) {
		r.Use(ClientMiddleware)

		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{item_id}", h.Cart.RemoveItem)
		})

		r.Get("/banks", h.Banks.MyBanks)
		r.Post("/banks", h.Banks.AddBank)
		r.Put("/banks/{bank_id}", h.Banks.UpdateBank)
		r.Delete("/banks/{bank_id}", h.Banks.DeleteBank)
		r.Get("/admin-banks", h.Banks.AdminBanks)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.Checkout.InitiateCheckout)
			r.Get("/", h.Checkout.GetCheckout)
			r.Delete("/", h.Checkout.CancelCheckout)
			r.Put("/step", h.Checkout.SetStep)
			r.Put("/address", h.Checkout.SetAddress)
			r.Put("/payment", h.Checkout.SetPayment)
			r.Put("/note", h.Checkout.SetNote)
			r.Post("/submit", h.Checkout.Submit)
		})
	})

	return otelhttp.NewHandler(r, "storefront-service")
}
