package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts the two saga entry points. Confirmation outcomes
// are labeled committed / already_processed / rejected / error.
type CheckoutMetrics struct {
	SessionsCreated prometheus.Counter
	Confirmations   *prometheus.CounterVec
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	sessions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bigstore",
		Name:      "checkout_sessions_created_total",
		Help:      "Total number of payment sessions created.",
	})
	confirmations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bigstore",
		Name:      "payment_confirmations_total",
		Help:      "Total number of payment confirmation calls by outcome.",
	}, []string{"outcome"})

	reg.MustRegister(sessions, confirmations)
	return &CheckoutMetrics{SessionsCreated: sessions, Confirmations: confirmations}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
