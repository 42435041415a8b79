package memory

import (
	"context"
	"time"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create stages a transaction record.
func (r *TransactionRepository) Create(_ context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.transactions = append(t.transactions, *transaction)
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, tr := range r.store.transactions {
		if tr.ID == id {
			return &tr, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// List returns matching transactions, newest first.
func (r *TransactionRepository) List(_ context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	matched := make([]*domain.Transaction, 0)
	for _, tr := range r.store.transactions {
		if filter.HolderID != "" && tr.HolderID != filter.HolderID {
			continue
		}
		if filter.MerchantID != "" && tr.MerchantID != filter.MerchantID {
			continue
		}
		matched = append(matched, &tr)
	}
	r.store.mu.RUnlock()

	sortByCreated(matched,
		func(tr *domain.Transaction) time.Time { return tr.CreatedAt },
		func(tr *domain.Transaction) string { return tr.ID })
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}

	return paginate(matched, filter.Limit, filter.Offset), nil
}
