package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/custodyledger/internal/adapter/repository/memory"
	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

const (
	validPersonalID  = "12345678909"
	validPersonalID2 = "52998224725"
	validMerchantID  = "11222333000181"
	validMerchantID2 = "11444777000161"
)

type sequenceIDs struct{ n atomic.Int64 }

func (s *sequenceIDs) Generate() string {
	return fmt.Sprintf("id-%04d", s.n.Add(1))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ledgerFixture wires every use case to one in-memory store.
type ledgerFixture struct {
	holders      *usecase.HolderUseCase
	merchants    *usecase.MerchantUseCase
	transactions *usecase.TransactionUseCase
	ledger       *usecase.LedgerUseCase
	txManager    *memory.TxManager
	holderRepo   *memory.HolderRepository
	merchantRepo *memory.MerchantRepository
	txRepo       *memory.TransactionRepository
	outbox       *memory.OutboxRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	store := memory.NewStore(0)
	txManager := memory.NewTxManager(store)
	holderRepo := memory.NewHolderRepository(store)
	merchantRepo := memory.NewMerchantRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	outbox := memory.NewOutboxRepository(store)
	ids := &sequenceIDs{}

	return &ledgerFixture{
		holders:      usecase.NewHolderUseCase(txManager, holderRepo, outbox, ids, nil),
		merchants:    usecase.NewMerchantUseCase(txManager, merchantRepo, outbox, ids, domain.DefaultFeeRate, nil),
		transactions: usecase.NewTransactionUseCase(txManager, holderRepo, merchantRepo, txRepo, outbox, nil, ids, nil),
		ledger:       usecase.NewLedgerUseCase(memory.NewLedgerRepository(store), nil, 0),
		txManager:    txManager,
		holderRepo:   holderRepo,
		merchantRepo: merchantRepo,
		txRepo:       txRepo,
		outbox:       outbox,
	}
}

func (f *ledgerFixture) openHolder(t *testing.T, personalID, email, balance string) *domain.AccountHolder {
	t.Helper()
	h, err := f.holders.OpenHolder(context.Background(), usecase.OpenHolderInput{
		Name:           "Holder " + personalID,
		PersonalID:     personalID,
		Email:          email,
		InitialBalance: dec(balance),
	})
	require.NoError(t, err)
	return h
}

func (f *ledgerFixture) openMerchant(t *testing.T, merchantID, email, balance string) *domain.Merchant {
	t.Helper()
	m, err := f.merchants.OpenMerchant(context.Background(), usecase.OpenMerchantInput{
		Name:           "Merchant " + merchantID,
		MerchantID:     merchantID,
		Email:          email,
		InitialBalance: dec(balance),
	})
	require.NoError(t, err)
	return m
}
