package domain

import "errors"

// Ledger-mutating operations fail with one of these; handlers map them to
// HTTP statuses. Any failure leaves the ledger untouched.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimum        = errors.New("amount below plan minimum")
	ErrAlreadyResolved     = errors.New("transaction already resolved")
	ErrNotFound            = errors.New("record not found")
	ErrNotEligible         = errors.New("withdrawal not eligible this period")
)
