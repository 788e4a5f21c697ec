package payment

import "errors"

var (
	// ErrGateway wraps any failure talking to the payment provider.
	ErrGateway = errors.New("payment gateway error")
	// ErrBookingNotFound is returned when a confirmed session points at a
	// booking that no longer exists.
	ErrBookingNotFound = errors.New("booking not found")
)
