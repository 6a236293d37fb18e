package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Shehap111/big-store-server/internal/domain"
	"github.com/Shehap111/big-store-server/internal/gateway"
	"github.com/Shehap111/big-store-server/internal/metrics"
	"github.com/Shehap111/big-store-server/internal/pricing"
	"github.com/Shehap111/big-store-server/internal/repository"
	"github.com/Shehap111/big-store-server/internal/service"
)

// CheckoutService is the slice of the fulfillment service the handlers use.
type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, req service.CheckoutRequest) (string, error)
	ConfirmPayment(ctx context.Context, sessionID string) (service.ConfirmOutcome, error)
}

type Handler struct {
	svc     CheckoutService
	metrics *metrics.CheckoutMetrics
}

func NewHandler(svc CheckoutService, m *metrics.CheckoutMetrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

type createSessionRequest struct {
	PaymentMethod   string            `json:"paymentMethod"`
	SelectedAddress domain.Address    `json:"selectedAddress"`
	CartItems       []domain.CartItem `json:"cartItems"`
	TotalAmount     float64           `json:"totalAmount"`
	ShippingFee     float64           `json:"shippingFee"`
	UserID          string            `json:"userId"`
	Language        string            `json:"language"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type confirmRequest struct {
	SessionID string `json:"sessionId"`
}

type confirmResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// POST /create-checkout-session
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.CartItems) == 0 {
		respondError(w, http.StatusBadRequest, "no products in cart")
		return
	}

	sessionID, err := h.svc.CreateCheckoutSession(r.Context(), service.CheckoutRequest{
		PaymentMethod:   req.PaymentMethod,
		SelectedAddress: req.SelectedAddress,
		CartItems:       req.CartItems,
		TotalAmount:     req.TotalAmount,
		ShippingFee:     req.ShippingFee,
		UserID:          req.UserID,
		Language:        req.Language,
	})
	if err != nil {
		log.Printf("create checkout session failed: %v", err)
		respondError(w, statusFor(err), err.Error())
		return
	}

	h.metrics.SessionsCreated.Inc()
	respondJSON(w, http.StatusOK, createSessionResponse{SessionID: sessionID})
}

// POST /checkout-success
func (h *Handler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	outcome, err := h.svc.ConfirmPayment(r.Context(), req.SessionID)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.metrics.Confirmations.WithLabelValues("error").Inc()
		} else {
			h.metrics.Confirmations.WithLabelValues("rejected").Inc()
		}
		log.Printf("checkout success for session %s failed: %v", req.SessionID, err)
		respondError(w, status, err.Error())
		return
	}

	h.metrics.Confirmations.WithLabelValues(string(outcome)).Inc()
	respondJSON(w, http.StatusOK, confirmResponse{Status: string(outcome)})
}

// GET /
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Backend is working"))
}

// statusFor maps the error taxonomy onto HTTP classes: permanent client
// errors are 400 and must not be retried, transient ones are 500 and may be
// retried safely thanks to the idempotency gate.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInvalidCart),
		errors.Is(err, service.ErrPaymentNotCompleted),
		errors.Is(err, service.ErrMalformedMetadata),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, gateway.ErrSessionNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
