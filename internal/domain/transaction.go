package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a transfer between a holder and a merchant.
type TransactionKind string

const (
	// Deposit moves value from the holder to the merchant.
	Deposit TransactionKind = "D"
	// Withdrawal moves value from the merchant to the holder.
	Withdrawal TransactionKind = "S"
)

// ParseTransactionKind case-folds s and maps it to a kind.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(strings.ToUpper(strings.TrimSpace(s))) {
	case Deposit:
		return Deposit, nil
	case Withdrawal:
		return Withdrawal, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidTransactionKind, s)
	}
}

func (k TransactionKind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	default:
		return string(k)
	}
}

// Transaction is the immutable record of a processed transfer.
type Transaction struct {
	CreatedAt  time.Time
	ID         string
	HolderID   string
	MerchantID string
	Kind       TransactionKind
	Amount     decimal.Decimal
	Fee        decimal.Decimal
}

// Fee returns the fee charged on amount at rate.
func Fee(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// FeeAdjusted returns amount plus the fee charged on it.
func FeeAdjusted(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Add(Fee(amount, rate))
}

// Settlement is the outcome of applying one transfer to both balances.
type Settlement struct {
	HolderBalance   decimal.Decimal
	MerchantBalance decimal.Decimal
	Fee             decimal.Decimal
}

// Settle computes the post-transfer balances. The debited party pays the
// amount plus the merchant's fee, the credited party receives the amount.
// Neither account is modified.
func Settle(kind TransactionKind, amount decimal.Decimal, holder *AccountHolder, merchant *Merchant) (Settlement, error) {
	required := FeeAdjusted(amount, merchant.FeeRate)
	s := Settlement{Fee: Fee(amount, merchant.FeeRate)}

	switch kind {
	case Deposit:
		if holder.Balance.LessThan(required) {
			return Settlement{}, fmt.Errorf("%w: holder %s has %s, needs %s",
				ErrInsufficientFunds, holder.ID, holder.Balance, required)
		}
		s.HolderBalance = holder.Balance.Sub(required)
		s.MerchantBalance = merchant.Balance.Add(amount)
	case Withdrawal:
		if merchant.Balance.LessThan(required) {
			return Settlement{}, fmt.Errorf("%w: merchant %s has %s, needs %s",
				ErrInsufficientFunds, merchant.ID, merchant.Balance, required)
		}
		s.MerchantBalance = merchant.Balance.Sub(required)
		s.HolderBalance = holder.Balance.Add(amount)
	default:
		return Settlement{}, fmt.Errorf("%w: got %q", ErrInvalidTransactionKind, string(kind))
	}

	return s, nil
}
