package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

func holderKey(id string) string { return "holder:" + id }

// HolderRepository implements usecase.HolderRepository.
type HolderRepository struct {
	store *Store
}

// NewHolderRepository creates a new HolderRepository.
func NewHolderRepository(store *Store) *HolderRepository {
	return &HolderRepository{store: store}
}

// Create stages a new holder.
func (r *HolderRepository) Create(_ context.Context, tx usecase.Transaction, holder *domain.AccountHolder) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.holders[holder.ID] = *holder
	return nil
}

// GetByID retrieves a committed holder.
func (r *HolderRepository) GetByID(_ context.Context, id string) (*domain.AccountHolder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	h, ok := r.store.holders[id]
	if !ok {
		return nil, domain.ErrHolderNotFound
	}
	return &h, nil
}

// GetByIDForUpdate locks the holder for the rest of tx and returns its
// latest state, including writes already staged in tx.
func (r *HolderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.AccountHolder, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	if err := t.lock(ctx, holderKey(id)); err != nil {
		return nil, err
	}

	if h, ok := t.holders[id]; ok {
		return &h, nil
	}
	return r.GetByID(ctx, id)
}

// GetByPersonalID retrieves a committed holder by personal identifier.
func (r *HolderRepository) GetByPersonalID(_ context.Context, personalID string) (*domain.AccountHolder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, h := range r.store.holders {
		if h.PersonalID == personalID {
			return &h, nil
		}
	}
	return nil, domain.ErrHolderNotFound
}

// ExistsByPersonalID reports whether a holder uses personalID.
func (r *HolderRepository) ExistsByPersonalID(ctx context.Context, personalID string) (bool, error) {
	_, err := r.GetByPersonalID(ctx, personalID)
	return err == nil, nil
}

// ExistsByEmail reports whether a holder uses email.
func (r *HolderRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, h := range r.store.holders {
		if h.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Update stages the full holder record.
func (r *HolderRepository) Update(_ context.Context, tx usecase.Transaction, holder *domain.AccountHolder) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.holders[holder.ID] = *holder
	return nil
}

// UpdateBalance stages a new balance. The holder must be locked by tx.
func (r *HolderRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	current, err := r.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	current.Balance = balance
	current.UpdatedAt = updatedAt
	return r.Update(ctx, tx, current)
}

// List lists committed holders ordered by creation time.
func (r *HolderRepository) List(_ context.Context, limit, offset int) ([]*domain.AccountHolder, error) {
	r.store.mu.RLock()
	all := make([]*domain.AccountHolder, 0, len(r.store.holders))
	for _, h := range r.store.holders {
		all = append(all, &h)
	}
	r.store.mu.RUnlock()

	sortByCreated(all,
		func(h *domain.AccountHolder) time.Time { return h.CreatedAt },
		func(h *domain.AccountHolder) string { return h.ID })

	return paginate(all, limit, offset), nil
}
