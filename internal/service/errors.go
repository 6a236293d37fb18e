package service

import "errors"

var (
	// ErrPaymentNotCompleted: the processor reports the session unpaid.
	// Terminal for this confirmation call; nothing was written.
	ErrPaymentNotCompleted = errors.New("payment was not successful")

	// ErrMalformedMetadata: a required session metadata field is missing
	// or undecodable. Permanent: the purchase context cannot be
	// recovered, the user has to restart checkout.
	ErrMalformedMetadata = errors.New("invalid metadata or missing data")

	// ErrEmptyCart: the stored snapshot holds no products. Should be
	// impossible given the creation invariant, handled anyway.
	ErrEmptyCart = errors.New("no products found in cart")
)
