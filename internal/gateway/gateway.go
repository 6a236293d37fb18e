package gateway

import (
	"context"
	"errors"

	"github.com/Shehap111/big-store-server/internal/domain"
)

var (
	// ErrGatewayUnavailable covers transport failures, processor 5xx
	// responses and an open circuit breaker. Safe to retry upstream.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrSessionNotFound means the processor has no record of the id,
	// e.g. a forged or expired session. Permanent.
	ErrSessionNotFound = errors.New("payment session not found")
)

// CreateSessionInput carries everything a new payment session needs. The
// idempotency key is minted per checkout attempt, never reused across
// carts: a session cannot be re-targeted to a new cart, so a retried
// checkout gets a fresh snapshot and a fresh key.
type CreateSessionInput struct {
	LineItems      []domain.LineItem
	SuccessURL     string
	CancelURL      string
	Metadata       domain.SessionMetadata
	IdempotencyKey string
}

// PaymentGateway wraps the external processor's session operations.
// CreateSession is the point where money movement becomes possible; the
// gateway itself never retries it.
type PaymentGateway interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (string, error)
	RetrieveSession(ctx context.Context, sessionID string) (*domain.PaymentSession, error)
}
