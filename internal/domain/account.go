package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes the two parties of a transfer.
type AccountKind int

const (
	KindHolder AccountKind = iota + 1
	KindMerchant
)

func (k AccountKind) String() string {
	switch k {
	case KindHolder:
		return "holder"
	case KindMerchant:
		return "merchant"
	default:
		return "unknown"
	}
}

// IdentifierLength is the number of digits of the national identifier for the kind.
func (k AccountKind) IdentifierLength() int {
	switch k {
	case KindHolder:
		return PersonalIDLength
	case KindMerchant:
		return MerchantIDLength
	default:
		return 0
	}
}

const (
	PersonalIDLength = 11
	MerchantIDLength = 14
)

// DefaultFeeRate is applied to merchants opened without an explicit rate.
var DefaultFeeRate = decimal.NewFromFloat(0.01)

// AccountHolder is an individual customer.
type AccountHolder struct {
	ID         string
	Name       string
	PersonalID string
	Email      string
	Balance    decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Merchant is a business account that charges FeeRate on every transfer.
type Merchant struct {
	ID         string
	Name       string
	MerchantID string
	Email      string
	Balance    decimal.Decimal
	FeeRate    decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Close marks the holder inactive. Closing twice is a no-op.
func (h *AccountHolder) Close(at time.Time) bool {
	if !h.Active {
		return false
	}
	h.Active = false
	h.UpdatedAt = at
	return true
}

// Close marks the merchant inactive. Closing twice is a no-op.
func (m *Merchant) Close(at time.Time) bool {
	if !m.Active {
		return false
	}
	m.Active = false
	m.UpdatedAt = at
	return true
}

// HolderPatch carries the optional fields of a holder profile update.
type HolderPatch struct {
	Name  *string
	Email *string
}

// Apply merges the non-empty fields of the patch into a copy of h.
func (p HolderPatch) Apply(h AccountHolder) AccountHolder {
	if v, ok := nonEmpty(p.Name); ok {
		h.Name = NormalizeName(v)
	}
	if v, ok := nonEmpty(p.Email); ok {
		h.Email = NormalizeEmail(v)
	}
	return h
}

// MerchantPatch carries the optional fields of a merchant profile update.
type MerchantPatch struct {
	Name    *string
	Email   *string
	FeeRate *decimal.Decimal
}

// Apply merges the supplied fields of the patch into a copy of m.
func (p MerchantPatch) Apply(m Merchant) Merchant {
	if v, ok := nonEmpty(p.Name); ok {
		m.Name = NormalizeName(v)
	}
	if v, ok := nonEmpty(p.Email); ok {
		m.Email = NormalizeEmail(v)
	}
	if p.FeeRate != nil {
		m.FeeRate = *p.FeeRate
	}
	return m
}

func nonEmpty(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := NormalizeName(*s)
	if v == "" {
		return "", false
	}
	return *s, true
}
