package postgres

import (
	"context"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/custodyledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create records a processed transaction within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	err := generated.New(pgxTx(tx)).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:         transaction.ID,
		HolderID:   transaction.HolderID,
		MerchantID: transaction.MerchantID,
		Kind:       string(transaction.Kind),
		Amount:     decimalToNumeric(transaction.Amount),
		Fee:        decimalToNumeric(transaction.Fee),
		CreatedAt:  timeToPgTimestamptz(transaction.CreatedAt),
	})
	return translate(err, nil)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrTransactionNotFound)
	}
	return rowToTransaction(row), nil
}

// List returns transactions matching filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, generated.ListTransactionsParams{
		HolderID:   filter.HolderID,
		MerchantID: filter.MerchantID,
		Limit:      int32(filter.Limit),
		Offset:     int32(filter.Offset),
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToTransaction(row))
	}
	return transactions, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:         row.ID,
		HolderID:   row.HolderID,
		MerchantID: row.MerchantID,
		Kind:       domain.TransactionKind(row.Kind),
		Amount:     numericToDecimal(row.Amount),
		Fee:        numericToDecimal(row.Fee),
		CreatedAt:  row.CreatedAt.Time,
	}
}
