package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

var holderColumns = []string{"id", "name", "personal_id", "email", "balance", "active", "created_at", "updated_at"}

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	pool.ExpectBegin()
	tx, err := NewTxManager(pool, 0).Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrHolderNotFound},
		{"personal id taken", &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "holders_personal_id_key"}, domain.ErrPersonalIDTaken},
		{"merchant id taken", &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "merchants_merchant_id_key"}, domain.ErrMerchantIDTaken},
		{"email taken", &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "merchants_email_key"}, domain.ErrEmailTaken},
		{"unknown constraint", &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "other"}, domain.ErrConflict},
		{"lock timeout", &pgconn.PgError{Code: pgErrLockNotAvailable}, domain.ErrBusy},
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, domain.ErrBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.err, domain.ErrHolderNotFound), tt.want)
		})
	}

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translate(plain, nil))
	assert.NoError(t, translate(nil, nil))
}

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "100.50", "0.01", "123456789.123456", "-3.2"} {
		d := decimal.RequireFromString(s)
		assert.True(t, d.Equal(numericToDecimal(decimalToNumeric(d))), s)
	}
}

func TestHolderRepositoryGetByID(t *testing.T) {
	pool := newMockPool(t)
	repo := NewHolderRepository(pool)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	pool.ExpectQuery("SELECT id, name, personal_id, email, balance, active, created_at, updated_at FROM holders WHERE id").
		WithArgs("h1").
		WillReturnRows(pgxmock.NewRows(holderColumns).
			AddRow("h1", "Ana Souza", "12345678909", "ana@example.com", "150.25", true, created, created))

	holder, err := repo.GetByID(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", holder.Name)
	assert.Equal(t, "12345678909", holder.PersonalID)
	assert.True(t, holder.Balance.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, holder.Active)
	assert.Equal(t, created, holder.CreatedAt)

	assertExpectations(t, pool)
}

func TestHolderRepositoryGetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := NewHolderRepository(pool)

	pool.ExpectQuery("FROM holders WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrHolderNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHolderRepositoryCreateDuplicateEmail(t *testing.T) {
	pool := newMockPool(t)
	repo := NewHolderRepository(pool)
	tx := beginTx(t, pool)
	now := time.Now().UTC()

	pool.ExpectExec("INSERT INTO holders").
		WithArgs("h1", "Ana", "12345678909", "ana@example.com", pgxmock.AnyArg(), true, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "holders_email_key"})

	err := repo.Create(context.Background(), tx, &domain.AccountHolder{
		ID:         "h1",
		Name:       "Ana",
		PersonalID: "12345678909",
		Email:      "ana@example.com",
		Balance:    decimal.NewFromInt(10),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestHolderRepositoryGetByIDForUpdateLockTimeout(t *testing.T) {
	pool := newMockPool(t)
	repo := NewHolderRepository(pool)
	tx := beginTx(t, pool)

	pool.ExpectQuery("FOR UPDATE").
		WithArgs("h1").
		WillReturnError(&pgconn.PgError{Code: pgErrLockNotAvailable})

	_, err := repo.GetByIDForUpdate(context.Background(), tx, "h1")
	assert.ErrorIs(t, err, domain.ErrBusy)
}

func TestMerchantRepositoryUpdateBalance(t *testing.T) {
	pool := newMockPool(t)
	repo := NewMerchantRepository(pool)
	tx := beginTx(t, pool)

	pool.ExpectExec("UPDATE merchants SET balance").
		WithArgs("m1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateBalance(context.Background(), tx, "m1", decimal.NewFromInt(99), time.Now())
	require.NoError(t, err)
	assertExpectations(t, pool)
}

func TestMerchantRepositoryList(t *testing.T) {
	pool := newMockPool(t)
	repo := NewMerchantRepository(pool)
	now := time.Now().UTC()

	pool.ExpectQuery("FROM merchants").
		WithArgs(int32(10), int32(0)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "merchant_id", "email", "balance", "fee_rate", "active", "created_at", "updated_at"}).
			AddRow("m1", "Loja", "11222333000181", "loja@example.com", "0", "0.015", true, now, now).
			AddRow("m2", "Mercado", "11444777000161", "mercado@example.com", "12", "0.01", false, now, now))

	merchants, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, merchants, 2)
	assert.True(t, merchants[0].FeeRate.Equal(decimal.RequireFromString("0.015")))
	assert.False(t, merchants[1].Active)
}

func TestTransactionRepositoryList(t *testing.T) {
	pool := newMockPool(t)
	repo := NewTransactionRepository(pool)
	now := time.Now().UTC()

	pool.ExpectQuery("FROM transactions").
		WithArgs("h1", "", int32(20), int32(0)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "holder_id", "merchant_id", "kind", "amount", "fee", "created_at"}).
			AddRow("t2", "h1", "m1", "S", "50", "0.5", now).
			AddRow("t1", "h1", "m1", "D", "100", "1", now.Add(-time.Minute)))

	transactions, err := repo.List(context.Background(), usecase.TransactionFilter{HolderID: "h1", Limit: 20})
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, domain.Withdrawal, transactions[0].Kind)
	assert.Equal(t, domain.Deposit, transactions[1].Kind)
	assert.True(t, transactions[0].Fee.Equal(decimal.RequireFromString("0.5")))
}

func TestTransactionRepositoryGetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := NewTransactionRepository(pool)

	pool.ExpectQuery("FROM transactions WHERE id").WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestOutboxRepositoryGetUnpublished(t *testing.T) {
	pool := newMockPool(t)
	repo := NewOutboxRepository(pool)
	now := time.Now().UTC()

	pool.ExpectQuery("FROM outbox_events").
		WithArgs(int32(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at", "published_at", "published"}).
			AddRow("e1", "t1", domain.AggregateTypeTransaction, domain.EventTypeTransactionProcessed, []byte(`{"amount":"10"}`), now, nil, false))

	events, err := repo.GetUnpublished(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "10", events[0].Payload["amount"])
	assert.Nil(t, events[0].PublishedAt)
}

func TestLedgerRepositoryTotals(t *testing.T) {
	pool := newMockPool(t)
	repo := NewLedgerRepository(pool)

	pool.ExpectQuery("GROUP BY kind").
		WillReturnRows(pgxmock.NewRows([]string{"kind", "count", "volume", "fees"}).
			AddRow("D", int64(2), "300", "3").
			AddRow("S", int64(1), "100", "1"))
	pool.ExpectQuery("SUM\\(balance\\)").
		WillReturnRows(pgxmock.NewRows([]string{"holders_total", "merchants_total"}).AddRow("1000", "396"))

	totals, err := repo.TotalsByKind(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, domain.Deposit, totals[0].Kind)
	assert.Equal(t, int64(2), totals[0].Count)
	assert.True(t, totals[1].Fees.Equal(decimal.NewFromInt(1)))

	holders, merchants, err := repo.TotalBalances(context.Background())
	require.NoError(t, err)
	assert.True(t, holders.Equal(decimal.NewFromInt(1000)))
	assert.True(t, merchants.Equal(decimal.NewFromInt(396)))
}
