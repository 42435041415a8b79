package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/custodyledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// TotalsByKind aggregates processed transactions per kind.
func (r *LedgerRepository) TotalsByKind(ctx context.Context) ([]usecase.KindTotals, error) {
	rows, err := r.queries.TransactionTotalsByKind(ctx)
	if err != nil {
		return nil, translate(err, nil)
	}

	totals := make([]usecase.KindTotals, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, usecase.KindTotals{
			Kind:   domain.TransactionKind(row.Kind),
			Count:  row.Count,
			Volume: numericToDecimal(row.Volume),
			Fees:   numericToDecimal(row.Fees),
		})
	}
	return totals, nil
}

// TotalBalances sums holder and merchant balances.
func (r *LedgerRepository) TotalBalances(ctx context.Context) (holders, merchants decimal.Decimal, err error) {
	row, err := r.queries.TotalBalances(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, translate(err, nil)
	}
	return numericToDecimal(row.HoldersTotal), numericToDecimal(row.MerchantsTotal), nil
}
