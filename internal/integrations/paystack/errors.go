package paystack

import "errors"

var (
	// ErrUnavailable means the gateway could not be reached or answered with a
	// server error. Callers may retry; nothing authoritative was learned.
	ErrUnavailable = errors.New("paystack: gateway unavailable")

	// ErrRejected means the gateway was reached and refused the request.
	// Terminal for the attempt, do not retry as-is.
	ErrRejected = errors.New("paystack: gateway rejected request")

	// ErrTransactionNotFound means the gateway has no transaction for the
	// reference. Expected while a client polls before initialization landed.
	ErrTransactionNotFound = errors.New("paystack: transaction not found")
)
