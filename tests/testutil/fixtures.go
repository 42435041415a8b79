package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/adapter/repository/postgres"
	"github.com/iho/custodyledger/internal/domain"
	infrapg "github.com/iho/custodyledger/internal/infrastructure/postgres"
	"github.com/iho/custodyledger/internal/usecase"
)

// Identifiers with valid check digits.
var (
	PersonalIDs = []string{"12345678909", "52998224725", "11144477735", "39053344705"}
	MerchantIDs = []string{"11222333000181", "11444777000161"}
)

// TestDB provides a migrated connection to the integration database.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to TEST_DATABASE_URL, skipping the test when it is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	migrationsPath := "migrations"
	for _, candidate := range []string{"migrations", "../migrations", "../../migrations"} {
		if _, err := os.Stat(candidate); err == nil {
			migrationsPath = candidate
			break
		}
	}

	if err := infrapg.RunMigrations(dbURL, migrationsPath, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infrapg.NewPool(ctx, dbURL, 20, 2)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	db := &TestDB{Pool: pool, t: t}
	t.Cleanup(pool.Close)
	db.TruncateAll(ctx)
	return db
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `TRUNCATE TABLE outbox_events, transactions, holders, merchants CASCADE`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Ledger wires every use case to the test database.
type Ledger struct {
	Holders      *usecase.HolderUseCase
	Merchants    *usecase.MerchantUseCase
	Transactions *usecase.TransactionUseCase
	Summary      *usecase.LedgerUseCase

	HolderRepo   *postgres.HolderRepository
	MerchantRepo *postgres.MerchantRepository
	OutboxRepo   *postgres.OutboxRepository
}

// NewLedger builds use cases over db with the given lock timeout.
func NewLedger(db *TestDB, lockTimeout time.Duration) *Ledger {
	pool := db.Pool
	txManager := postgres.NewTxManager(pool, lockTimeout)
	holderRepo := postgres.NewHolderRepository(pool)
	merchantRepo := postgres.NewMerchantRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop(), nil)

	return &Ledger{
		Holders:   usecase.NewHolderUseCase(txManager, holderRepo, outboxRepo, idGen, nil),
		Merchants: usecase.NewMerchantUseCase(txManager, merchantRepo, outboxRepo, idGen, domain.DefaultFeeRate, nil),
		Transactions: usecase.NewTransactionUseCase(txManager, holderRepo, merchantRepo,
			postgres.NewTransactionRepository(pool), outboxRepo, retrier, idGen, nil),
		Summary:      usecase.NewLedgerUseCase(postgres.NewLedgerRepository(pool), nil, 0),
		HolderRepo:   holderRepo,
		MerchantRepo: merchantRepo,
		OutboxRepo:   outboxRepo,
	}
}

// OpenHolder opens a holder with the n-th fixture identifier.
func (l *Ledger) OpenHolder(t *testing.T, n int, balance string) *domain.AccountHolder {
	t.Helper()
	h, err := l.Holders.OpenHolder(context.Background(), usecase.OpenHolderInput{
		Name:           "Holder " + PersonalIDs[n],
		PersonalID:     PersonalIDs[n],
		Email:          "holder" + PersonalIDs[n] + "@example.com",
		InitialBalance: decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("failed to open holder: %v", err)
	}
	return h
}

// OpenMerchant opens a merchant with the n-th fixture identifier.
func (l *Ledger) OpenMerchant(t *testing.T, n int, balance, feeRate string) *domain.Merchant {
	t.Helper()
	rate := decimal.RequireFromString(feeRate)
	m, err := l.Merchants.OpenMerchant(context.Background(), usecase.OpenMerchantInput{
		Name:           "Merchant " + MerchantIDs[n],
		MerchantID:     MerchantIDs[n],
		Email:          "merchant" + MerchantIDs[n] + "@example.com",
		InitialBalance: decimal.RequireFromString(balance),
		FeeRate:        &rate,
	})
	if err != nil {
		t.Fatalf("failed to open merchant: %v", err)
	}
	return m
}
