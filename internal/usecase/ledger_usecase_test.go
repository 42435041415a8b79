package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
	"github.com/iho/custodyledger/internal/usecase/mocks"
)

func TestLedgerUseCase_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)

	repo.EXPECT().TotalsByKind(gomock.Any()).Return([]usecase.KindTotals{
		{Kind: domain.Deposit, Count: 3, Volume: dec("30"), Fees: dec("0.30")},
		{Kind: domain.Withdrawal, Count: 1, Volume: dec("5"), Fees: dec("0.05")},
	}, nil)
	repo.EXPECT().TotalBalances(gomock.Any()).Return(dec("100"), dec("200"), nil)

	summary, err := usecase.NewLedgerUseCase(repo, nil, 0).Summary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.Deposits.Count)
	assert.EqualValues(t, 1, summary.Withdrawals.Count)
	assert.True(t, summary.TotalFees.Equal(dec("0.35")))
	assert.True(t, summary.HolderBalances.Equal(dec("100")))
	assert.True(t, summary.MerchantBalances.Equal(dec("200")))
}

func TestLedgerUseCase_SummaryEmptyLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)

	repo.EXPECT().TotalsByKind(gomock.Any()).Return(nil, nil)
	repo.EXPECT().TotalBalances(gomock.Any()).Return(decimal.Zero, decimal.Zero, nil)

	summary, err := usecase.NewLedgerUseCase(repo, nil, 0).Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Deposits.Count)
	assert.True(t, summary.TotalFees.IsZero())
}

func TestLedgerUseCase_SummaryStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)

	repo.EXPECT().TotalsByKind(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := usecase.NewLedgerUseCase(repo, nil, 0).Summary(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
}

func TestLedgerUseCase_SummaryServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	cached, err := json.Marshal(usecase.LedgerSummary{
		Deposits:         usecase.KindTotals{Kind: domain.Deposit, Count: 7, Volume: dec("70"), Fees: dec("0.7")},
		Withdrawals:      usecase.KindTotals{Kind: domain.Withdrawal, Volume: decimal.Zero, Fees: decimal.Zero},
		TotalFees:        dec("0.7"),
		HolderBalances:   dec("10"),
		MerchantBalances: dec("20"),
	})
	require.NoError(t, err)

	cache.EXPECT().Get(gomock.Any(), "ledger:summary").Return(cached, true, nil)

	summary, err := usecase.NewLedgerUseCase(repo, cache, time.Second).Summary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, summary.Deposits.Count)
	assert.True(t, summary.TotalFees.Equal(dec("0.7")))
}

func TestLedgerUseCase_SummaryCacheMissStoresResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "ledger:summary").Return(nil, false, nil)
	repo.EXPECT().TotalsByKind(gomock.Any()).Return(nil, nil)
	repo.EXPECT().TotalBalances(gomock.Any()).Return(dec("5"), dec("6"), nil)
	cache.EXPECT().Set(gomock.Any(), "ledger:summary", gomock.Any(), 3*time.Second).Return(nil)

	summary, err := usecase.NewLedgerUseCase(repo, cache, 3*time.Second).Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.MerchantBalances.Equal(dec("6")))
}

func TestLedgerUseCase_SummaryCacheFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	repo.EXPECT().TotalsByKind(gomock.Any()).Return(nil, nil)
	repo.EXPECT().TotalBalances(gomock.Any()).Return(decimal.Zero, decimal.Zero, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := usecase.NewLedgerUseCase(repo, cache, 0).Summary(context.Background())
	require.NoError(t, err)
}

func TestLedgerUseCase_InvalidateSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), "ledger:summary").Return(errors.New("redis down"))

	usecase.NewLedgerUseCase(nil, cache, 0).InvalidateSummary(context.Background())
	usecase.NewLedgerUseCase(nil, nil, 0).InvalidateSummary(context.Background())
}
