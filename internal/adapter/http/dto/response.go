package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/domain/document"
	"github.com/iho/custodyledger/internal/usecase"
)

// HolderResponse represents an account holder in API responses.
type HolderResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	PersonalID          string          `json:"personal_id"`
	PersonalIDFormatted string          `json:"personal_id_formatted"`
	Email               string          `json:"email"`
	Balance             decimal.Decimal `json:"balance"`
	Active              bool            `json:"active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// HolderFromDomain converts a domain holder to a response.
func HolderFromDomain(h *domain.AccountHolder) *HolderResponse {
	return &HolderResponse{
		ID:                  h.ID,
		Name:                h.Name,
		PersonalID:          h.PersonalID,
		PersonalIDFormatted: document.Format(h.PersonalID, domain.KindHolder),
		Email:               h.Email,
		Balance:             h.Balance,
		Active:              h.Active,
		CreatedAt:           h.CreatedAt,
		UpdatedAt:           h.UpdatedAt,
	}
}

// HoldersFromDomain converts domain holders to responses.
func HoldersFromDomain(holders []*domain.AccountHolder) []*HolderResponse {
	result := make([]*HolderResponse, len(holders))
	for i, h := range holders {
		result[i] = HolderFromDomain(h)
	}
	return result
}

// MerchantResponse represents a merchant in API responses.
type MerchantResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	MerchantID          string          `json:"merchant_id"`
	MerchantIDFormatted string          `json:"merchant_id_formatted"`
	Email               string          `json:"email"`
	Balance             decimal.Decimal `json:"balance"`
	FeeRate             decimal.Decimal `json:"fee_rate"`
	Active              bool            `json:"active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// MerchantFromDomain converts a domain merchant to a response.
func MerchantFromDomain(m *domain.Merchant) *MerchantResponse {
	return &MerchantResponse{
		ID:                  m.ID,
		Name:                m.Name,
		MerchantID:          m.MerchantID,
		MerchantIDFormatted: document.Format(m.MerchantID, domain.KindMerchant),
		Email:               m.Email,
		Balance:             m.Balance,
		FeeRate:             m.FeeRate,
		Active:              m.Active,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// MerchantsFromDomain converts domain merchants to responses.
func MerchantsFromDomain(merchants []*domain.Merchant) []*MerchantResponse {
	result := make([]*MerchantResponse, len(merchants))
	for i, m := range merchants {
		result[i] = MerchantFromDomain(m)
	}
	return result
}

// TransactionResponse represents a processed transaction in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	HolderID   string          `json:"holder_id"`
	MerchantID string          `json:"merchant_id"`
	Kind       string          `json:"kind"`
	KindName   string          `json:"kind_name"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		HolderID:   t.HolderID,
		MerchantID: t.MerchantID,
		Kind:       string(t.Kind),
		KindName:   t.Kind.String(),
		Amount:     t.Amount,
		Fee:        t.Fee,
		CreatedAt:  t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// KindTotalsResponse aggregates transactions of one kind.
type KindTotalsResponse struct {
	Count  int64           `json:"count"`
	Volume decimal.Decimal `json:"volume"`
	Fees   decimal.Decimal `json:"fees"`
}

// LedgerSummaryResponse represents the ledger summary.
type LedgerSummaryResponse struct {
	Deposits         KindTotalsResponse `json:"deposits"`
	Withdrawals      KindTotalsResponse `json:"withdrawals"`
	TotalFees        decimal.Decimal    `json:"total_fees"`
	HolderBalances   decimal.Decimal    `json:"holder_balances"`
	MerchantBalances decimal.Decimal    `json:"merchant_balances"`
}

// LedgerSummaryFromUseCase converts a use case summary to a response.
func LedgerSummaryFromUseCase(s *usecase.LedgerSummary) *LedgerSummaryResponse {
	return &LedgerSummaryResponse{
		Deposits:         kindTotals(s.Deposits),
		Withdrawals:      kindTotals(s.Withdrawals),
		TotalFees:        s.TotalFees,
		HolderBalances:   s.HolderBalances,
		MerchantBalances: s.MerchantBalances,
	}
}

func kindTotals(t usecase.KindTotals) KindTotalsResponse {
	return KindTotalsResponse{Count: t.Count, Volume: t.Volume, Fees: t.Fees}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
