package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

// OpenHolderRequest represents a request to open an account holder.
type OpenHolderRequest struct {
	Name           string `json:"name"`
	PersonalID     string `json:"personal_id"`
	Email          string `json:"email"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenHolderRequest) ToUseCaseInput() (usecase.OpenHolderInput, error) {
	balance, err := parseOptionalDecimal("initial_balance", r.InitialBalance)
	if err != nil {
		return usecase.OpenHolderInput{}, err
	}

	return usecase.OpenHolderInput{
		Name:           r.Name,
		PersonalID:     r.PersonalID,
		Email:          r.Email,
		InitialBalance: balance,
	}, nil
}

// UpdateHolderRequest carries the holder fields to change. Omitted or empty
// fields are left as they are.
type UpdateHolderRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateHolderRequest) ToPatch() domain.HolderPatch {
	return domain.HolderPatch{Name: r.Name, Email: r.Email}
}

// OpenMerchantRequest represents a request to open a merchant.
type OpenMerchantRequest struct {
	Name           string  `json:"name"`
	MerchantID     string  `json:"merchant_id"`
	Email          string  `json:"email"`
	InitialBalance string  `json:"initial_balance,omitempty"`
	FeeRate        *string `json:"fee_rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenMerchantRequest) ToUseCaseInput() (usecase.OpenMerchantInput, error) {
	balance, err := parseOptionalDecimal("initial_balance", r.InitialBalance)
	if err != nil {
		return usecase.OpenMerchantInput{}, err
	}

	feeRate, err := parseDecimalPtr("fee_rate", r.FeeRate)
	if err != nil {
		return usecase.OpenMerchantInput{}, err
	}

	return usecase.OpenMerchantInput{
		Name:           r.Name,
		MerchantID:     r.MerchantID,
		Email:          r.Email,
		InitialBalance: balance,
		FeeRate:        feeRate,
	}, nil
}

// UpdateMerchantRequest carries the merchant fields to change.
type UpdateMerchantRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	FeeRate *string `json:"fee_rate,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateMerchantRequest) ToPatch() (domain.MerchantPatch, error) {
	feeRate, err := parseDecimalPtr("fee_rate", r.FeeRate)
	if err != nil {
		return domain.MerchantPatch{}, err
	}
	return domain.MerchantPatch{Name: r.Name, Email: r.Email, FeeRate: feeRate}, nil
}

// CreateTransactionRequest represents a request to move value between a
// holder and a merchant. Kind is "D" (deposit) or "S" (withdrawal).
type CreateTransactionRequest struct {
	HolderID   string `json:"holder_id"`
	MerchantID string `json:"merchant_id"`
	Amount     string `json:"amount"`
	Kind       string `json:"kind"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.ProcessTransferInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return usecase.ProcessTransferInput{}, fmt.Errorf("%w: amount %q is not a decimal", domain.ErrInvalidAmount, r.Amount)
	}

	return usecase.ProcessTransferInput{
		HolderID:   r.HolderID,
		MerchantID: r.MerchantID,
		Amount:     amount,
		Kind:       r.Kind,
	}, nil
}

func parseOptionalDecimal(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a decimal", domain.ErrValidation, field, raw)
	}
	return d, nil
}

func parseDecimalPtr(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a decimal", domain.ErrValidation, field, *raw)
	}
	return &d, nil
}
