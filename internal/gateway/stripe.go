package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/Shehap111/big-store-server/internal/domain"
)

// StripeGateway implements PaymentGateway over Stripe Checkout. All calls
// go through a circuit breaker so a struggling processor trips fast instead
// of tying up confirmation handlers.
type StripeGateway struct {
	api     *client.API
	breaker *gobreaker.CircuitBreaker[any]
	timeout time.Duration
}

func NewStripeGateway(secretKey string, timeout time.Duration) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "stripe",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &StripeGateway{api: api, breaker: breaker, timeout: timeout}
}

func (g *StripeGateway) CreateSession(ctx context.Context, in CreateSessionInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems:  make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems)),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(in.IdempotencyKey)
	params.Metadata = in.Metadata.ToMap()

	for _, li := range in.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(li.Name),
			Description: stripe.String(li.Description),
		}
		if li.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{li.ImageURL})
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(li.Currency),
				UnitAmount:  stripe.Int64(li.UnitAmount),
				ProductData: productData,
			},
		})
	}

	result, err := g.breaker.Execute(func() (any, error) {
		return g.api.CheckoutSessions.New(params)
	})
	if err != nil {
		return "", mapStripeError(err)
	}
	return result.(*stripe.CheckoutSession).ID, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*domain.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	result, err := g.breaker.Execute(func() (any, error) {
		return g.api.CheckoutSessions.Get(sessionID, params)
	})
	if err != nil {
		return nil, mapStripeError(err)
	}

	sess := result.(*stripe.CheckoutSession)
	return &domain.PaymentSession{
		ID:       sess.ID,
		Status:   paymentStatus(sess.PaymentStatus),
		Metadata: domain.MetadataFromMap(sess.Metadata),
	}, nil
}

func paymentStatus(s stripe.CheckoutSessionPaymentStatus) domain.PaymentStatus {
	switch s {
	case stripe.CheckoutSessionPaymentStatusPaid,
		stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return domain.PaymentStatusPaid
	case stripe.CheckoutSessionPaymentStatusUnpaid:
		return domain.PaymentStatusPending
	default:
		return domain.PaymentStatusFailed
	}
}

func mapStripeError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit breaker open", ErrGatewayUnavailable)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.Code == stripe.ErrorCodeResourceMissing:
			return fmt.Errorf("%w: %s", ErrSessionNotFound, stripeErr.Msg)
		case stripeErr.HTTPStatusCode >= 500:
			return fmt.Errorf("%w: stripe returned %d", ErrGatewayUnavailable, stripeErr.HTTPStatusCode)
		default:
			return fmt.Errorf("stripe request rejected: %w", err)
		}
	}

	// Timeouts, DNS failures and the like.
	return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
}
