package gateway

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"

	"github.com/Shehap111/big-store-server/internal/domain"
)

func TestMapStripeError_ResourceMissing(t *testing.T) {
	err := mapStripeError(&stripe.Error{
		Code:           stripe.ErrorCodeResourceMissing,
		HTTPStatusCode: 404,
		Msg:            "No such checkout session",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMapStripeError_ServerError(t *testing.T) {
	err := mapStripeError(&stripe.Error{HTTPStatusCode: 503})
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestMapStripeError_ClientError(t *testing.T) {
	err := mapStripeError(&stripe.Error{
		Code:           stripe.ErrorCodeParameterInvalidEmpty,
		HTTPStatusCode: 400,
	})
	assert.NotErrorIs(t, err, ErrGatewayUnavailable)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestMapStripeError_Transport(t *testing.T) {
	err := mapStripeError(errors.New("dial tcp: i/o timeout"))
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestMapStripeError_BreakerOpen(t *testing.T) {
	err := mapStripeError(gobreaker.ErrOpenState)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestPaymentStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentStatusPaid, paymentStatus(stripe.CheckoutSessionPaymentStatusPaid))
	assert.Equal(t, domain.PaymentStatusPaid, paymentStatus(stripe.CheckoutSessionPaymentStatusNoPaymentRequired))
	assert.Equal(t, domain.PaymentStatusPending, paymentStatus(stripe.CheckoutSessionPaymentStatusUnpaid))
}
