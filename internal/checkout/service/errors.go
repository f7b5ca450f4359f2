package service

import "errors"

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to checkout")
	ErrMissingName    = errors.New("customer name is required")
	ErrMissingPhone   = errors.New("customer phone is required")
	ErrMissingAddress = errors.New("delivery address is required")
)

// IsValidation reports whether err is a pre-write validation failure, as
// opposed to a store error that happened after the workflow started
// writing.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingPhone) ||
		errors.Is(err, ErrMissingAddress)
}
