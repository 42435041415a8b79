package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the domain and use case layers wraps
// exactly one of these so callers can classify it with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrNotFound          = errors.New("not found")
	ErrInactiveAccount   = errors.New("account is inactive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBusy              = errors.New("resource busy, retry later")
	ErrPersistence       = errors.New("persistence failure")
)

var (
	// Identifier errors
	ErrInvalidPersonalID = fmt.Errorf("%w: invalid personal identifier", ErrValidation)
	ErrInvalidMerchantID = fmt.Errorf("%w: invalid merchant identifier", ErrValidation)

	// Account errors
	ErrHolderNotFound        = fmt.Errorf("%w: account holder", ErrNotFound)
	ErrMerchantNotFound      = fmt.Errorf("%w: merchant", ErrNotFound)
	ErrPersonalIDTaken       = fmt.Errorf("%w: personal identifier already registered", ErrConflict)
	ErrMerchantIDTaken       = fmt.Errorf("%w: merchant identifier already registered", ErrConflict)
	ErrEmailTaken            = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidName           = fmt.Errorf("%w: invalid name", ErrValidation)
	ErrInvalidEmail          = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrInvalidFeeRate        = fmt.Errorf("%w: fee rate must be in [0, 1)", ErrValidation)
	ErrInvalidInitialBalance = fmt.Errorf("%w: initial balance must not be negative", ErrValidation)

	// Transaction errors
	ErrInvalidTransactionKind = fmt.Errorf("%w: transaction kind must be 'D' or 'S'", ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrAmountTooLarge         = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrTransactionNotFound    = fmt.Errorf("%w: transaction", ErrNotFound)
	ErrInvalidPagination      = fmt.Errorf("%w: invalid pagination", ErrValidation)
)

// IsRetryable reports whether the whole operation may be submitted again.
// Nothing is left half-applied when either of these kinds is returned.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrPersistence)
}
