package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Shehap111/big-store-server/internal/cache"
	"github.com/Shehap111/big-store-server/internal/domain"
	"github.com/Shehap111/big-store-server/internal/gateway"
	"github.com/Shehap111/big-store-server/internal/pricing"
	"github.com/Shehap111/big-store-server/internal/repository"
)

// deliveryOffset is the promised delivery window stamped on every order.
const deliveryOffset = 4 * 24 * time.Hour

// ConfirmOutcome distinguishes a fresh commit from an idempotent replay of
// an already-processed confirmation. Both are successes.
type ConfirmOutcome string

const (
	OutcomeCommitted        ConfirmOutcome = "committed"
	OutcomeAlreadyProcessed ConfirmOutcome = "already_processed"
)

// CheckoutRequest is one checkout attempt as the storefront submits it.
type CheckoutRequest struct {
	PaymentMethod   string
	SelectedAddress domain.Address
	CartItems       []domain.CartItem
	TotalAmount     float64
	ShippingFee     float64
	UserID          string
	Language        string
}

// FulfillmentService coordinates the purchase saga between the payment
// processor and the durable store. All state lives in the store; instances
// are safe for concurrent use.
type FulfillmentService struct {
	store      repository.Store
	gateway    gateway.PaymentGateway
	cache      cache.CartCache // optional, may be nil
	successURL string
	cancelURL  string
	now        func() time.Time
}

func NewFulfillmentService(
	store repository.Store,
	gw gateway.PaymentGateway,
	cartCache cache.CartCache,
	successURL, cancelURL string,
) *FulfillmentService {
	return &FulfillmentService{
		store:      store,
		gateway:    gw,
		cache:      cartCache,
		successURL: successURL,
		cancelURL:  cancelURL,
		now:        time.Now,
	}
}

// CreateCheckoutSession snapshots the cart and opens a payment session that
// carries the cart id and purchase context as metadata. Each attempt gets a
// fresh snapshot and a fresh idempotency key; a session is never re-pointed
// at another cart. A failed attempt leaves at most an orphan open cart.
func (s *FulfillmentService) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	for _, item := range req.CartItems {
		if item.Quantity < 1 {
			return "", fmt.Errorf("%w: item %d has quantity %d", pricing.ErrInvalidCart, item.ID, item.Quantity)
		}
	}
	lineItems, err := pricing.LineItems(req.CartItems, req.Language)
	if err != nil {
		return "", err
	}

	addressJSON, err := json.Marshal(req.SelectedAddress)
	if err != nil {
		return "", fmt.Errorf("serialize address: %w", err)
	}

	cart := &domain.CartSnapshot{
		UserID:   req.UserID,
		Products: req.CartItems,
	}
	cartID, err := s.store.CreateCart(ctx, cart)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cart); err != nil {
			log.Printf("cache set for cart %s failed: %v", cartID, err)
		}
	}

	sessionID, err := s.gateway.CreateSession(ctx, gateway.CreateSessionInput{
		LineItems:      lineItems,
		SuccessURL:     s.successURL,
		CancelURL:      s.cancelURL,
		IdempotencyKey: uuid.NewString(),
		Metadata: domain.SessionMetadata{
			CartID:      cartID,
			Address:     string(addressJSON),
			TotalAmount: formatAmount(req.TotalAmount),
			ShippingFee: formatAmount(req.ShippingFee),
			UserID:      req.UserID,
		},
	})
	if err != nil {
		return "", err
	}

	log.Printf("checkout session %s created for cart %s (user %s, %d items)",
		sessionID, cartID, req.UserID, len(req.CartItems))
	return sessionID, nil
}

// ConfirmPayment is the saga's commit path. The processor may deliver the
// same confirmation more than once; every state-changing effect sits behind
// the store's cart-status gate, so replays and races collapse to a no-op.
func (s *FulfillmentService) ConfirmPayment(ctx context.Context, sessionID string) (ConfirmOutcome, error) {
	session, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Status != domain.PaymentStatusPaid {
		return "", ErrPaymentNotCompleted
	}

	meta := session.Metadata
	if !meta.Complete() {
		return "", ErrMalformedMetadata
	}

	cart, err := s.loadCart(ctx, meta.CartID)
	if err != nil {
		return "", err
	}
	if cart.Status == domain.CartStatusPaid {
		// Duplicate confirmation; the order and inventory writes have
		// already happened.
		return OutcomeAlreadyProcessed, nil
	}
	if len(cart.Products) == 0 {
		return "", ErrEmptyCart
	}

	var address domain.Address
	if err := json.Unmarshal([]byte(meta.Address), &address); err != nil {
		return "", fmt.Errorf("%w: undecodable address", ErrMalformedMetadata)
	}

	now := s.now().UTC()
	order := &domain.Order{
		CartID:        cart.ID,
		UserID:        meta.UserID,
		Address:       address,
		Products:      cart.Products,
		TotalAmount:   meta.TotalAmount,
		ShippingFee:   meta.ShippingFee,
		OrderDate:     now,
		DeliveryDate:  now.Add(deliveryOffset),
		PaymentMethod: "online",
		Status:        "Paid",
		OrderStatus:   "Processing",
	}

	err = s.store.CommitOrder(ctx, order)
	if errors.Is(err, repository.ErrCartAlreadyPaid) {
		// Lost the race against a concurrent confirmation for the same
		// cart; its commit counts as ours.
		return OutcomeAlreadyProcessed, nil
	}
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cart.ID); err != nil {
			log.Printf("cache invalidation for cart %s failed: %v", cart.ID, err)
		}
	}

	log.Printf("order %s committed for cart %s (user %s)", order.ID, cart.ID, order.UserID)
	return OutcomeCommitted, nil
}

// loadCart reads through the cache. A stale cached snapshot can only say
// "open" for a cart the store already finalized; that path still funnels
// into CommitOrder's status gate, so staleness never duplicates writes.
func (s *FulfillmentService) loadCart(ctx context.Context, cartID string) (*domain.CartSnapshot, error) {
	if s.cache != nil {
		cart, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get for cart %s failed: %v", cartID, err)
		}
	}

	cart, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cart); err != nil {
			log.Printf("cache backfill for cart %s failed: %v", cartID, err)
		}
	}
	return cart, nil
}

// formatAmount renders a major-unit amount the way the storefront sent it,
// without exponent notation, for the string-typed metadata fields.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
