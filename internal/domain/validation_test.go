package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	if err := ValidateName("  Loja   do Bairro "); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateName("   "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if err := ValidateName(strings.Repeat("a", MaxNameLength+1)); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail(" Ana@Example.COM "); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, bad := range []string{"", "ana", "ana@", "ana@example"} {
		if err := ValidateEmail(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("%q: expected ErrInvalidEmail, got %v", bad, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromInt(10)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := ValidateAmount(decimal.RequireFromString("1000000000001")); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateFeeRate(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"0", "0.01", "0.999"} {
		if err := ValidateFeeRate(decimal.RequireFromString(ok)); err != nil {
			t.Errorf("%s: unexpected error %v", ok, err)
		}
	}
	for _, bad := range []string{"-0.01", "1", "2.5"} {
		if err := ValidateFeeRate(decimal.RequireFromString(bad)); !errors.Is(err, ErrInvalidFeeRate) {
			t.Errorf("%s: expected ErrInvalidFeeRate, got %v", bad, err)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, err := ValidatePagination(0, 0)
	if err != nil || limit != DefaultPageSize || offset != 0 {
		t.Fatalf("unexpected defaults %d %d %v", limit, offset, err)
	}
	limit, _, _ = ValidatePagination(500, 0)
	if limit != MaxPageSize {
		t.Fatalf("expected clamp to %d, got %d", MaxPageSize, limit)
	}
	if _, _, err := ValidatePagination(10, -1); !errors.Is(err, ErrInvalidPagination) {
		t.Fatalf("expected ErrInvalidPagination, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	if !IsRetryable(ErrBusy) || !IsRetryable(ErrPersistence) {
		t.Fatal("busy and persistence errors are retryable")
	}
	if IsRetryable(ErrInsufficientFunds) || IsRetryable(ErrHolderNotFound) {
		t.Fatal("business errors are not retryable")
	}
}
