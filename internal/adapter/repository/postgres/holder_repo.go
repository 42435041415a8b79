package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/custodyledger/internal/usecase"
)

// HolderRepository implements usecase.HolderRepository.
type HolderRepository struct {
	queries *generated.Queries
}

// NewHolderRepository creates a new HolderRepository.
func NewHolderRepository(db generated.DBTX) *HolderRepository {
	return &HolderRepository{queries: generated.New(db)}
}

// Create inserts a holder within a transaction.
func (r *HolderRepository) Create(ctx context.Context, tx usecase.Transaction, holder *domain.AccountHolder) error {
	err := generated.New(pgxTx(tx)).CreateHolder(ctx, generated.CreateHolderParams{
		ID:         holder.ID,
		Name:       holder.Name,
		PersonalID: holder.PersonalID,
		Email:      holder.Email,
		Balance:    decimalToNumeric(holder.Balance),
		Active:     holder.Active,
		CreatedAt:  timeToPgTimestamptz(holder.CreatedAt),
		UpdatedAt:  timeToPgTimestamptz(holder.UpdatedAt),
	})
	return translate(err, nil)
}

// GetByID retrieves a holder by ID.
func (r *HolderRepository) GetByID(ctx context.Context, id string) (*domain.AccountHolder, error) {
	row, err := r.queries.GetHolderByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrHolderNotFound)
	}
	return rowToHolder(row), nil
}

// GetByIDForUpdate retrieves a holder by ID with a FOR UPDATE lock.
func (r *HolderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.AccountHolder, error) {
	row, err := generated.New(pgxTx(tx)).GetHolderByIDForUpdate(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrHolderNotFound)
	}
	return rowToHolder(row), nil
}

// GetByPersonalID retrieves a holder by personal identifier.
func (r *HolderRepository) GetByPersonalID(ctx context.Context, personalID string) (*domain.AccountHolder, error) {
	row, err := r.queries.GetHolderByPersonalID(ctx, personalID)
	if err != nil {
		return nil, translate(err, domain.ErrHolderNotFound)
	}
	return rowToHolder(row), nil
}

// ExistsByPersonalID reports whether the personal identifier is registered.
func (r *HolderRepository) ExistsByPersonalID(ctx context.Context, personalID string) (bool, error) {
	exists, err := r.queries.HolderExistsByPersonalID(ctx, personalID)
	return exists, translate(err, nil)
}

// ExistsByEmail reports whether the email is registered to a holder.
func (r *HolderRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.queries.HolderExistsByEmail(ctx, email)
	return exists, translate(err, nil)
}

// Update writes the mutable holder fields.
func (r *HolderRepository) Update(ctx context.Context, tx usecase.Transaction, holder *domain.AccountHolder) error {
	err := generated.New(pgxTx(tx)).UpdateHolder(ctx, generated.UpdateHolderParams{
		ID:        holder.ID,
		Name:      holder.Name,
		Email:     holder.Email,
		Active:    holder.Active,
		UpdatedAt: timeToPgTimestamptz(holder.UpdatedAt),
	})
	return translate(err, nil)
}

// UpdateBalance sets the holder balance.
func (r *HolderRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	err := generated.New(pgxTx(tx)).UpdateHolderBalance(ctx, generated.UpdateHolderBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	return translate(err, nil)
}

// List returns holders in creation order.
func (r *HolderRepository) List(ctx context.Context, limit, offset int) ([]*domain.AccountHolder, error) {
	rows, err := r.queries.ListHolders(ctx, generated.ListHoldersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	holders := make([]*domain.AccountHolder, 0, len(rows))
	for _, row := range rows {
		holders = append(holders, rowToHolder(row))
	}
	return holders, nil
}

func rowToHolder(row generated.Holder) *domain.AccountHolder {
	return &domain.AccountHolder{
		ID:         row.ID,
		Name:       row.Name,
		PersonalID: row.PersonalID,
		Email:      row.Email,
		Balance:    numericToDecimal(row.Balance),
		Active:     row.Active,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}
