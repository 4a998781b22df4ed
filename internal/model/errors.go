package model

import (
	"errors"
	"fmt"
)

// Named failure kinds. Every mutating operation either fully applies or
// fails with exactly one of these; callers assert on the kind, not the text.
var (
	ErrSubscriptionNotFound = errors.New("subscription does not exist")
	ErrSubscriptionPaused   = errors.New("subscription is not active")
	ErrEmptyBalance         = errors.New("nothing to withdraw")
	ErrInvalidDuration      = errors.New("duration must be positive")
	ErrFunctionNotFound     = errors.New("no matching operation")
	ErrPaymentDataMissing   = errors.New("payment carries no operation data")
	ErrUnauthorized         = errors.New("missing or invalid caller identity")
)

// NotOwnerError rejects a mutation attempted by anyone but the product owner.
type NotOwnerError struct {
	Caller string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("caller %s is not the subscription owner", e.Caller)
}

// IncorrectValueError rejects a purchase whose attached payment does not
// exactly equal the product price, in either direction.
type IncorrectValueError struct {
	Sent     uint64
	Required uint64
}

func (e *IncorrectValueError) Error() string {
	return fmt.Sprintf("incorrect payment value: sent %d wei, required %d wei", e.Sent, e.Required)
}
