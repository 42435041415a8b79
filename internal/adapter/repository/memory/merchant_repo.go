package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

func merchantKey(id string) string { return "merchant:" + id }

// MerchantRepository implements usecase.MerchantRepository.
type MerchantRepository struct {
	store *Store
}

// NewMerchantRepository creates a new MerchantRepository.
func NewMerchantRepository(store *Store) *MerchantRepository {
	return &MerchantRepository{store: store}
}

// Create stages a new merchant.
func (r *MerchantRepository) Create(_ context.Context, tx usecase.Transaction, merchant *domain.Merchant) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.merchants[merchant.ID] = *merchant
	return nil
}

// GetByID retrieves a committed merchant.
func (r *MerchantRepository) GetByID(_ context.Context, id string) (*domain.Merchant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.merchants[id]
	if !ok {
		return nil, domain.ErrMerchantNotFound
	}
	return &m, nil
}

// GetByIDForUpdate locks the merchant for the rest of tx and returns its
// latest state, including writes already staged in tx.
func (r *MerchantRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Merchant, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	if err := t.lock(ctx, merchantKey(id)); err != nil {
		return nil, err
	}

	if m, ok := t.merchants[id]; ok {
		return &m, nil
	}
	return r.GetByID(ctx, id)
}

// GetByMerchantID retrieves a committed merchant by merchant identifier.
func (r *MerchantRepository) GetByMerchantID(_ context.Context, merchantID string) (*domain.Merchant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, m := range r.store.merchants {
		if m.MerchantID == merchantID {
			return &m, nil
		}
	}
	return nil, domain.ErrMerchantNotFound
}

// ExistsByMerchantID reports whether a merchant uses merchantID.
func (r *MerchantRepository) ExistsByMerchantID(ctx context.Context, merchantID string) (bool, error) {
	_, err := r.GetByMerchantID(ctx, merchantID)
	return err == nil, nil
}

// ExistsByEmail reports whether a merchant uses email.
func (r *MerchantRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, m := range r.store.merchants {
		if m.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Update stages the full merchant record.
func (r *MerchantRepository) Update(_ context.Context, tx usecase.Transaction, merchant *domain.Merchant) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.merchants[merchant.ID] = *merchant
	return nil
}

// UpdateBalance stages a new balance. The merchant must be locked by tx.
func (r *MerchantRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	current, err := r.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	current.Balance = balance
	current.UpdatedAt = updatedAt
	return r.Update(ctx, tx, current)
}

// List lists committed merchants ordered by creation time.
func (r *MerchantRepository) List(_ context.Context, limit, offset int) ([]*domain.Merchant, error) {
	r.store.mu.RLock()
	all := make([]*domain.Merchant, 0, len(r.store.merchants))
	for _, m := range r.store.merchants {
		all = append(all, &m)
	}
	r.store.mu.RUnlock()

	sortByCreated(all,
		func(m *domain.Merchant) time.Time { return m.CreatedAt },
		func(m *domain.Merchant) string { return m.ID })

	return paginate(all, limit, offset), nil
}
