package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// TotalsByKind aggregates committed transactions per kind.
func (r *LedgerRepository) TotalsByKind(_ context.Context) ([]usecase.KindTotals, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byKind := map[domain.TransactionKind]*usecase.KindTotals{}
	order := []domain.TransactionKind{}
	for _, tr := range r.store.transactions {
		t, ok := byKind[tr.Kind]
		if !ok {
			t = &usecase.KindTotals{Kind: tr.Kind, Volume: decimal.Zero, Fees: decimal.Zero}
			byKind[tr.Kind] = t
			order = append(order, tr.Kind)
		}
		t.Count++
		t.Volume = t.Volume.Add(tr.Amount)
		t.Fees = t.Fees.Add(tr.Fee)
	}

	totals := make([]usecase.KindTotals, 0, len(order))
	for _, k := range order {
		totals = append(totals, *byKind[k])
	}
	return totals, nil
}

// TotalBalances sums the committed balances of each account kind.
func (r *LedgerRepository) TotalBalances(_ context.Context) (holders, merchants decimal.Decimal, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	holders, merchants = decimal.Zero, decimal.Zero
	for _, h := range r.store.holders {
		holders = holders.Add(h.Balance)
	}
	for _, m := range r.store.merchants {
		merchants = merchants.Add(m.Balance)
	}
	return holders, merchants, nil
}
