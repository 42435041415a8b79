package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
)

// HolderRepository defines data access for account holders.
// Lookups return domain.ErrHolderNotFound when no row matches.
type HolderRepository interface {
	Create(ctx context.Context, tx Transaction, holder *domain.AccountHolder) error
	GetByID(ctx context.Context, id string) (*domain.AccountHolder, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.AccountHolder, error)
	GetByPersonalID(ctx context.Context, personalID string) (*domain.AccountHolder, error)
	ExistsByPersonalID(ctx context.Context, personalID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, tx Transaction, holder *domain.AccountHolder) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.AccountHolder, error)
}

// MerchantRepository defines data access for merchants.
// Lookups return domain.ErrMerchantNotFound when no row matches.
type MerchantRepository interface {
	Create(ctx context.Context, tx Transaction, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Merchant, error)
	GetByMerchantID(ctx context.Context, merchantID string) (*domain.Merchant, error)
	ExistsByMerchantID(ctx context.Context, merchantID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, tx Transaction, merchant *domain.Merchant) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Merchant, error)
}

// TransactionFilter narrows a transaction listing. Empty fields match everything.
type TransactionFilter struct {
	HolderID   string
	MerchantID string
	Limit      int
	Offset     int
}

// TransactionRepository defines data access for processed transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
}

// KindTotals aggregates processed transactions of one kind.
type KindTotals struct {
	Kind   domain.TransactionKind
	Count  int64
	Volume decimal.Decimal
	Fees   decimal.Decimal
}

// LedgerRepository defines data access for ledger-wide aggregates.
type LedgerRepository interface {
	TotalsByKind(ctx context.Context) ([]KindTotals, error)
	TotalBalances(ctx context.Context) (holders, merchants decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a unit of work in the account store.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation while it fails with a transient store error.
// When retries are exhausted the returned error wraps domain.ErrBusy.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache stores short-lived serialized values. Get reports found=false for
// missing or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SummaryInvalidator drops a cached ledger summary after balances change.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request may be submitted again.
	Release(ctx context.Context, key string) error
}
