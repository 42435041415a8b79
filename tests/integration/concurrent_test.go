package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
	"github.com/iho/custodyledger/tests/testutil"
)

func TestConcurrentDepositsNoOverdraft(t *testing.T) {
	db := testutil.NewTestDB(t)
	ledger := testutil.NewLedger(db, 5*time.Second)
	ctx := context.Background()

	// 50 deposits of 10 at 1% need 505; only 40 fit in 404.
	holder := ledger.OpenHolder(t, 0, "404")
	merchant := ledger.OpenMerchant(t, 0, "0", "0.01")

	const attempts = 50
	var (
		wg           sync.WaitGroup
		successCount atomic.Int32
		fundsErrors  atomic.Int32
		otherErrors  atomic.Int32
	)

	wg.Add(attempts)
	for range attempts {
		go func() {
			defer wg.Done()
			_, err := ledger.Transactions.ProcessTransfer(ctx, usecase.ProcessTransferInput{
				HolderID: holder.ID, MerchantID: merchant.ID, Amount: dec("10"), Kind: "D",
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case domain.IsRetryable(err):
				otherErrors.Add(1)
			default:
				assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
				fundsErrors.Add(1)
			}
		}()
	}
	wg.Wait()

	h, err := ledger.Holders.GetHolder(ctx, holder.ID)
	require.NoError(t, err)
	m, err := ledger.Merchants.GetMerchant(ctx, merchant.ID)
	require.NoError(t, err)

	assert.False(t, h.Balance.IsNegative(), "holder balance %s", h.Balance)

	succeeded := int64(successCount.Load())
	assert.LessOrEqual(t, succeeded, int64(40))
	assert.True(t, h.Balance.Equal(dec("404").Sub(dec("10.1").Mul(decimal.NewFromInt(succeeded)))), "holder %s", h.Balance)
	assert.True(t, m.Balance.Equal(dec("10").Mul(decimal.NewFromInt(succeeded))), "merchant %s", m.Balance)
	t.Logf("success=%d insufficient=%d busy=%d", succeeded, fundsErrors.Load(), otherErrors.Load())
}

func TestOpposingTransfersDoNotDeadlock(t *testing.T) {
	db := testutil.NewTestDB(t)
	ledger := testutil.NewLedger(db, 5*time.Second)
	ctx := context.Background()

	holder := ledger.OpenHolder(t, 0, "1000")
	merchant := ledger.OpenMerchant(t, 0, "1000", "0")

	const rounds = 40
	var wg sync.WaitGroup
	var failures atomic.Int32

	wg.Add(rounds * 2)
	for range rounds {
		for _, kind := range []string{"D", "S"} {
			go func() {
				defer wg.Done()
				if _, err := ledger.Transactions.ProcessTransfer(ctx, usecase.ProcessTransferInput{
					HolderID: holder.ID, MerchantID: merchant.ID, Amount: dec("1"), Kind: kind,
				}); err != nil {
					failures.Add(1)
				}
			}()
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("opposing transfers did not finish")
	}

	h, _ := ledger.Holders.GetHolder(ctx, holder.ID)
	m, _ := ledger.Merchants.GetMerchant(ctx, merchant.ID)
	assert.True(t, h.Balance.Add(m.Balance).Equal(dec("2000")), "value was created or lost: %s + %s", h.Balance, m.Balance)
	assert.Zero(t, failures.Load())
}
