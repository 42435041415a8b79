package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/custodyledger/internal/domain"
)

// storeErr classifies an error returned by a repository or transaction.
// Domain errors pass through; deadline expiry while waiting on the store is
// reported as busy; anything else is a persistence failure. The original
// error stays in the chain so retriers can inspect driver codes.
func storeErr(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range []error{
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrNotFound,
		domain.ErrInactiveAccount,
		domain.ErrInsufficientFunds,
		domain.ErrBusy,
		domain.ErrPersistence,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBusy, err)
	}

	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

// errorType is the metrics label for err.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive_account"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrBusy):
		return "busy"
	default:
		return "persistence"
	}
}
