package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/domain/document"
	"github.com/iho/custodyledger/internal/infrastructure/metrics"
)

// MerchantUseCase manages the merchant lifecycle.
type MerchantUseCase struct {
	txManager      TransactionManager
	merchantRepo   MerchantRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	defaultFeeRate decimal.Decimal
	metrics        *metrics.Metrics
}

// NewMerchantUseCase creates a new MerchantUseCase. Merchants opened without
// a fee rate get defaultFeeRate. m may be nil.
func NewMerchantUseCase(
	txManager TransactionManager,
	merchantRepo MerchantRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	defaultFeeRate decimal.Decimal,
	m *metrics.Metrics,
) *MerchantUseCase {
	return &MerchantUseCase{
		txManager:      txManager,
		merchantRepo:   merchantRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		defaultFeeRate: defaultFeeRate,
		metrics:        m,
	}
}

// OpenMerchantInput represents input for opening a merchant account.
type OpenMerchantInput struct {
	Name           string
	MerchantID     string
	Email          string
	InitialBalance decimal.Decimal
	FeeRate        *decimal.Decimal
}

// OpenMerchant validates the identifier, enforces uniqueness and persists a
// new active merchant.
func (uc *MerchantUseCase) OpenMerchant(ctx context.Context, input OpenMerchantInput) (*domain.Merchant, error) {
	merchantID, err := document.Normalize(input.MerchantID, domain.KindMerchant)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	feeRate := uc.defaultFeeRate
	if input.FeeRate != nil {
		feeRate = *input.FeeRate
	}
	if err := domain.ValidateFeeRate(feeRate); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(input.Email)

	taken, err := uc.merchantRepo.ExistsByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, storeErr(err)
	}
	if taken {
		return nil, domain.ErrMerchantIDTaken
	}

	taken, err = uc.merchantRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:         uc.idGen.Generate(),
		Name:       domain.NormalizeName(input.Name),
		MerchantID: merchantID,
		Email:      email,
		Balance:    input.InitialBalance,
		FeeRate:    feeRate,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
		if err := uc.merchantRepo.Create(txCtx, tx, merchant); err != nil {
			return err
		}
		event := domain.NewAccountEvent(uc.idGen.Generate(), domain.EventTypeMerchantOpened,
			domain.KindMerchant, merchant.ID, merchant.Name, now)
		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsOpened.WithLabelValues(domain.KindMerchant.String()).Inc()
	}

	return merchant, nil
}

// GetMerchant retrieves a merchant by ID.
func (uc *MerchantUseCase) GetMerchant(ctx context.Context, id string) (*domain.Merchant, error) {
	merchant, err := uc.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return merchant, nil
}

// ListMerchantsInput represents input for listing merchants.
type ListMerchantsInput struct {
	Limit  int
	Offset int
}

// ListMerchants lists merchants with pagination.
func (uc *MerchantUseCase) ListMerchants(ctx context.Context, input ListMerchantsInput) ([]*domain.Merchant, error) {
	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	merchants, err := uc.merchantRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storeErr(err)
	}
	return merchants, nil
}

// UpdateMerchant merges patch into an active merchant's profile. The fee rate
// only changes when the patch carries one.
func (uc *MerchantUseCase) UpdateMerchant(ctx context.Context, id string, patch domain.MerchantPatch) (*domain.Merchant, error) {
	var updated domain.Merchant

	err := runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
		current, err := uc.merchantRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		updated = patch.Apply(*current)
		if !current.Active {
			return fmt.Errorf("%w: merchant %s", domain.ErrInactiveAccount, id)
		}
		if err := domain.ValidateName(updated.Name); err != nil {
			return err
		}
		if err := domain.ValidateEmail(updated.Email); err != nil {
			return err
		}
		if err := domain.ValidateFeeRate(updated.FeeRate); err != nil {
			return err
		}

		if updated.Email != current.Email {
			taken, err := uc.merchantRepo.ExistsByEmail(txCtx, updated.Email)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrEmailTaken
			}
		}

		updated.UpdatedAt = time.Now().UTC()
		return uc.merchantRepo.Update(txCtx, tx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// CloseMerchant deactivates a merchant. Repeated calls succeed.
func (uc *MerchantUseCase) CloseMerchant(ctx context.Context, id string) error {
	closed := false

	err := runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
		merchant, err := uc.merchantRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if !merchant.Close(now) {
			return nil
		}
		closed = true

		if err := uc.merchantRepo.Update(txCtx, tx, merchant); err != nil {
			return err
		}
		event := domain.NewAccountEvent(uc.idGen.Generate(), domain.EventTypeMerchantClosed,
			domain.KindMerchant, merchant.ID, merchant.Name, now)
		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return err
	}

	if closed && uc.metrics != nil {
		uc.metrics.AccountsClosed.WithLabelValues(domain.KindMerchant.String()).Inc()
	}

	return nil
}
