package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Shehap111/big-store-server/internal/metrics"
)

// NewRouter wires the checkout surface. CORS must answer preflights for the
// storefront origins; the payment processor's success redirect goes through
// the storefront, so only those origins call in.
func NewRouter(h *Handler, allowedOrigins []string, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/", h.Health)
	r.Handle("/metrics", metrics.Handler())
	r.Post("/create-checkout-session", h.CreateCheckoutSession)
	r.Post("/checkout-success", h.CheckoutSuccess)

	return otelhttp.NewHandler(r, "big-store-server")
}
