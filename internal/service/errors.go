package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrNoSession       = errors.New("no checkout session found")
	ErrInvalidAddress  = errors.New("shipping address is incomplete")
	ErrInvalidPayment  = errors.New("payment method is invalid")
	ErrProofRequired   = errors.New("transfer proof is required for transfer payments")
	ErrProofNotAllowed = errors.New("transfer proof is not allowed for cash on delivery")
	ErrInvalidStep     = errors.New("checkout step must be at least 1")
	ErrInvalidCartLine = errors.New("cart line is invalid")
)

// NetworkError wraps a failed call to the backend. The checkout session is left untouched.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
