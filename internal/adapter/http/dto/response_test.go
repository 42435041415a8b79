package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

func TestHolderFromDomain(t *testing.T) {
	now := time.Now()
	holder := &domain.AccountHolder{
		ID:         "h1",
		Name:       "Ana",
		PersonalID: "12345678909",
		Email:      "ana@example.com",
		Balance:    decimal.RequireFromString("123.45"),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	resp := HolderFromDomain(holder)
	if resp.ID != "h1" || !resp.Balance.Equal(holder.Balance) || !resp.Active {
		t.Fatalf("unexpected holder response: %+v", resp)
	}
	if resp.PersonalIDFormatted != "123.456.789-09" {
		t.Fatalf("unexpected formatted id %q", resp.PersonalIDFormatted)
	}

	list := HoldersFromDomain([]*domain.AccountHolder{holder})
	if len(list) != 1 || list[0].ID != holder.ID {
		t.Fatalf("HoldersFromDomain returned %+v", list)
	}
}

func TestMerchantFromDomain(t *testing.T) {
	merchant := &domain.Merchant{
		ID:         "m1",
		Name:       "Shop",
		MerchantID: "11222333000181",
		FeeRate:    decimal.RequireFromString("0.01"),
		Active:     true,
	}

	resp := MerchantFromDomain(merchant)
	if resp.MerchantIDFormatted != "11.222.333/0001-81" {
		t.Fatalf("unexpected formatted id %q", resp.MerchantIDFormatted)
	}
	if !resp.FeeRate.Equal(merchant.FeeRate) {
		t.Fatalf("unexpected fee rate %s", resp.FeeRate)
	}
	if got := MerchantsFromDomain(nil); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	tx := &domain.Transaction{
		ID:         "t1",
		HolderID:   "h1",
		MerchantID: "m1",
		Kind:       domain.Withdrawal,
		Amount:     decimal.RequireFromString("10"),
		Fee:        decimal.RequireFromString("0.10"),
	}

	resp := TransactionFromDomain(tx)
	if resp.Kind != "S" || resp.KindName != "withdrawal" {
		t.Fatalf("unexpected kind fields: %+v", resp)
	}
	if !resp.Fee.Equal(tx.Fee) {
		t.Fatalf("unexpected fee %s", resp.Fee)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["amount"] != "10" {
		t.Fatalf("expected amount serialized as string, got %#v", decoded["amount"])
	}
}

func TestLedgerSummaryFromUseCase(t *testing.T) {
	summary := &usecase.LedgerSummary{
		Deposits: usecase.KindTotals{
			Count:  2,
			Volume: decimal.RequireFromString("30"),
			Fees:   decimal.RequireFromString("0.3"),
		},
		Withdrawals:      usecase.KindTotals{Count: 1, Volume: decimal.RequireFromString("5")},
		TotalFees:        decimal.RequireFromString("0.3"),
		HolderBalances:   decimal.RequireFromString("70"),
		MerchantBalances: decimal.RequireFromString("30"),
	}

	resp := LedgerSummaryFromUseCase(summary)
	if resp.Deposits.Count != 2 || !resp.Deposits.Volume.Equal(summary.Deposits.Volume) {
		t.Fatalf("unexpected deposits %+v", resp.Deposits)
	}
	if resp.Withdrawals.Count != 1 || !resp.Withdrawals.Fees.IsZero() {
		t.Fatalf("unexpected withdrawals %+v", resp.Withdrawals)
	}
	if !resp.HolderBalances.Equal(summary.HolderBalances) || !resp.MerchantBalances.Equal(summary.MerchantBalances) {
		t.Fatalf("unexpected balances %+v", resp)
	}
}
