package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/custodyledger/internal/usecase"
)

// MerchantRepository implements usecase.MerchantRepository.
type MerchantRepository struct {
	queries *generated.Queries
}

// NewMerchantRepository creates a new MerchantRepository.
func NewMerchantRepository(db generated.DBTX) *MerchantRepository {
	return &MerchantRepository{queries: generated.New(db)}
}

// Create inserts a merchant within a transaction.
func (r *MerchantRepository) Create(ctx context.Context, tx usecase.Transaction, merchant *domain.Merchant) error {
	err := generated.New(pgxTx(tx)).CreateMerchant(ctx, generated.CreateMerchantParams{
		ID:         merchant.ID,
		Name:       merchant.Name,
		MerchantID: merchant.MerchantID,
		Email:      merchant.Email,
		Balance:    decimalToNumeric(merchant.Balance),
		FeeRate:    decimalToNumeric(merchant.FeeRate),
		Active:     merchant.Active,
		CreatedAt:  timeToPgTimestamptz(merchant.CreatedAt),
		UpdatedAt:  timeToPgTimestamptz(merchant.UpdatedAt),
	})
	return translate(err, nil)
}

// GetByID retrieves a merchant by ID.
func (r *MerchantRepository) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	row, err := r.queries.GetMerchantByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrMerchantNotFound)
	}
	return rowToMerchant(row), nil
}

// GetByIDForUpdate retrieves a merchant by ID with a FOR UPDATE lock.
func (r *MerchantRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Merchant, error) {
	row, err := generated.New(pgxTx(tx)).GetMerchantByIDForUpdate(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrMerchantNotFound)
	}
	return rowToMerchant(row), nil
}

// GetByMerchantID retrieves a merchant by merchant identifier.
func (r *MerchantRepository) GetByMerchantID(ctx context.Context, merchantID string) (*domain.Merchant, error) {
	row, err := r.queries.GetMerchantByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, translate(err, domain.ErrMerchantNotFound)
	}
	return rowToMerchant(row), nil
}

// ExistsByMerchantID reports whether the merchant identifier is registered.
func (r *MerchantRepository) ExistsByMerchantID(ctx context.Context, merchantID string) (bool, error) {
	exists, err := r.queries.MerchantExistsByMerchantID(ctx, merchantID)
	return exists, translate(err, nil)
}

// ExistsByEmail reports whether the email is registered to a merchant.
func (r *MerchantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.queries.MerchantExistsByEmail(ctx, email)
	return exists, translate(err, nil)
}

// Update writes the mutable merchant fields, fee rate included.
func (r *MerchantRepository) Update(ctx context.Context, tx usecase.Transaction, merchant *domain.Merchant) error {
	err := generated.New(pgxTx(tx)).UpdateMerchant(ctx, generated.UpdateMerchantParams{
		ID:        merchant.ID,
		Name:      merchant.Name,
		Email:     merchant.Email,
		FeeRate:   decimalToNumeric(merchant.FeeRate),
		Active:    merchant.Active,
		UpdatedAt: timeToPgTimestamptz(merchant.UpdatedAt),
	})
	return translate(err, nil)
}

// UpdateBalance sets the merchant balance.
func (r *MerchantRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	err := generated.New(pgxTx(tx)).UpdateMerchantBalance(ctx, generated.UpdateMerchantBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	return translate(err, nil)
}

// List returns merchants in creation order.
func (r *MerchantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Merchant, error) {
	rows, err := r.queries.ListMerchants(ctx, generated.ListMerchantsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	merchants := make([]*domain.Merchant, 0, len(rows))
	for _, row := range rows {
		merchants = append(merchants, rowToMerchant(row))
	}
	return merchants, nil
}

func rowToMerchant(row generated.Merchant) *domain.Merchant {
	return &domain.Merchant{
		ID:         row.ID,
		Name:       row.Name,
		MerchantID: row.MerchantID,
		Email:      row.Email,
		Balance:    numericToDecimal(row.Balance),
		FeeRate:    numericToDecimal(row.FeeRate),
		Active:     row.Active,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}
