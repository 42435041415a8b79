package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is stored under a claimed key until the first
	// request finishes.
	IdempotencyPending = "processing"

	// DefaultSummaryCacheTTL bounds how stale a cached ledger summary may be.
	DefaultSummaryCacheTTL = 5 * time.Second
)
