package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/infrastructure/metrics"
)

// TransactionUseCase moves value between a holder and a merchant.
type TransactionUseCase struct {
	txManager       TransactionManager
	holderRepo      HolderRepository
	merchantRepo    MerchantRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	retrier         Retrier
	idGen           IDGenerator
	metrics         *metrics.Metrics
	summary         SummaryInvalidator
}

// NewTransactionUseCase creates a new TransactionUseCase. retrier and m may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	holderRepo HolderRepository,
	merchantRepo MerchantRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	retrier Retrier,
	idGen IDGenerator,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		holderRepo:      holderRepo,
		merchantRepo:    merchantRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		retrier:         retrier,
		idGen:           idGen,
		metrics:         m,
	}
}

// WithSummaryInvalidator makes every committed transfer drop the cached
// ledger summary.
func (uc *TransactionUseCase) WithSummaryInvalidator(s SummaryInvalidator) *TransactionUseCase {
	uc.summary = s
	return uc
}

// ProcessTransferInput represents input for processing a transfer.
type ProcessTransferInput struct {
	HolderID   string
	MerchantID string
	Amount     decimal.Decimal
	Kind       string
}

// ProcessTransfer validates the request, locks both accounts, applies the
// fee-adjusted delta and records the transaction in one unit of work.
// Business rule violations are returned before anything is written.
// Lock contention is retried; if it persists the error wraps domain.ErrBusy
// and the whole call may be repeated.
func (uc *TransactionUseCase) ProcessTransfer(ctx context.Context, input ProcessTransferInput) (*domain.Transaction, error) {
	// 0. Validate inputs before starting transaction
	kind, err := domain.ParseTransactionKind(input.Kind)
	if err != nil {
		return nil, uc.reject(err)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, uc.reject(err)
	}

	start := time.Now()

	var result *domain.Transaction
	attempt := func() error {
		transaction, err := uc.process(ctx, kind, input)
		if err != nil {
			return err
		}
		result = transaction
		return nil
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, attempt)
	} else {
		err = attempt()
	}
	if err != nil {
		return nil, uc.reject(err)
	}

	if uc.summary != nil {
		uc.summary.InvalidateSummary(ctx)
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsProcessed.WithLabelValues(kind.String()).Inc()
		uc.metrics.TransactionDuration.Observe(time.Since(start).Seconds())
		uc.metrics.TransactionAmount.Observe(result.Amount.InexactFloat64())
		uc.metrics.FeesCharged.Add(result.Fee.InexactFloat64())
	}

	return result, nil
}

func (uc *TransactionUseCase) process(ctx context.Context, kind domain.TransactionKind, input ProcessTransferInput) (*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, storeErr(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Holders are always locked before merchants so two transfers can never
	// wait on each other in opposite order.
	holder, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, input.HolderID)
	if err != nil {
		return nil, storeErr(err)
	}
	merchant, err := uc.merchantRepo.GetByIDForUpdate(txCtx, tx, input.MerchantID)
	if err != nil {
		return nil, storeErr(err)
	}

	if !holder.Active {
		return nil, fmt.Errorf("%w: holder %s", domain.ErrInactiveAccount, holder.ID)
	}
	if !merchant.Active {
		return nil, fmt.Errorf("%w: merchant %s", domain.ErrInactiveAccount, merchant.ID)
	}

	settlement, err := domain.Settle(kind, input.Amount, holder, merchant)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transaction := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		HolderID:   holder.ID,
		MerchantID: merchant.ID,
		Kind:       kind,
		Amount:     input.Amount,
		Fee:        settlement.Fee,
		CreatedAt:  now,
	}

	if err := uc.holderRepo.UpdateBalance(txCtx, tx, holder.ID, settlement.HolderBalance, now); err != nil {
		return nil, storeErr(err)
	}
	if err := uc.merchantRepo.UpdateBalance(txCtx, tx, merchant.ID, settlement.MerchantBalance, now); err != nil {
		return nil, storeErr(err)
	}
	if err := uc.transactionRepo.Create(txCtx, tx, transaction); err != nil {
		return nil, storeErr(err)
	}

	event := domain.NewTransactionProcessedEvent(uc.idGen.Generate(), transaction, settlement)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, storeErr(err)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, storeErr(err)
	}

	return transaction, nil
}

func (uc *TransactionUseCase) reject(err error) error {
	if uc.metrics != nil {
		uc.metrics.TransactionErrors.WithLabelValues(errorType(err)).Inc()
	}
	return err
}

// GetTransfer retrieves a processed transaction by ID.
func (uc *TransactionUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return transaction, nil
}

// ListTransfersInput represents input for listing transactions.
type ListTransfersInput struct {
	HolderID   string
	MerchantID string
	Limit      int
	Offset     int
}

// ListTransfers lists processed transactions, newest first.
func (uc *TransactionUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) ([]*domain.Transaction, error) {
	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.List(ctx, TransactionFilter{
		HolderID:   input.HolderID,
		MerchantID: input.MerchantID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return transactions, nil
}
