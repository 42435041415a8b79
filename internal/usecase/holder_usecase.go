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

// HolderUseCase manages the account holder lifecycle.
type HolderUseCase struct {
	txManager  TransactionManager
	holderRepo HolderRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewHolderUseCase creates a new HolderUseCase. m may be nil.
func NewHolderUseCase(
	txManager TransactionManager,
	holderRepo HolderRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *HolderUseCase {
	return &HolderUseCase{
		txManager:  txManager,
		holderRepo: holderRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    m,
	}
}

// OpenHolderInput represents input for opening a holder account.
type OpenHolderInput struct {
	Name           string
	PersonalID     string
	Email          string
	InitialBalance decimal.Decimal
}

// OpenHolder validates the identifier, enforces uniqueness and persists a new
// active holder.
func (uc *HolderUseCase) OpenHolder(ctx context.Context, input OpenHolderInput) (*domain.AccountHolder, error) {
	personalID, err := document.Normalize(input.PersonalID, domain.KindHolder)
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

	email := domain.NormalizeEmail(input.Email)

	taken, err := uc.holderRepo.ExistsByPersonalID(ctx, personalID)
	if err != nil {
		return nil, storeErr(err)
	}
	if taken {
		return nil, domain.ErrPersonalIDTaken
	}

	taken, err = uc.holderRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	now := time.Now().UTC()
	holder := &domain.AccountHolder{
		ID:         uc.idGen.Generate(),
		Name:       domain.NormalizeName(input.Name),
		PersonalID: personalID,
		Email:      email,
		Balance:    input.InitialBalance,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
		if err := uc.holderRepo.Create(txCtx, tx, holder); err != nil {
			return err
		}
		event := domain.NewAccountEvent(uc.idGen.Generate(), domain.EventTypeHolderOpened,
			domain.KindHolder, holder.ID, holder.Name, now)
		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsOpened.WithLabelValues(domain.KindHolder.String()).Inc()
	}

	return holder, nil
}

// GetHolder retrieves a holder by ID.
func (uc *HolderUseCase) GetHolder(ctx context.Context, id string) (*domain.AccountHolder, error) {
	holder, err := uc.holderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return holder, nil
}

// ListHoldersInput represents input for listing holders.
type ListHoldersInput struct {
	Limit  int
	Offset int
}

// ListHolders lists holders with pagination.
func (uc *HolderUseCase) ListHolders(ctx context.Context, input ListHoldersInput) ([]*domain.AccountHolder, error) {
	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	holders, err := uc.holderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storeErr(err)
	}
	return holders, nil
}

// UpdateHolder merges patch into an active holder's profile.
func (uc *HolderUseCase) UpdateHolder(ctx context.Context, id string, patch domain.HolderPatch) (*domain.AccountHolder, error) {
	var updated domain.AccountHolder

	err := runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
		current, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		updated = patch.Apply(*current)
		if !current.Active {
			return fmt.Errorf("%w: holder %s", domain.ErrInactiveAccount, id)
		}
		if err := domain.ValidateName(updated.Name); err != nil {
			return err
		}
		if err := domain.ValidateEmail(updated.Email); err != nil {
			return err
		}

		if updated.Email != current.Email {
			taken, err := uc.holderRepo.ExistsByEmail(txCtx, updated.Email)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrEmailTaken
			}
		}

		updated.UpdatedAt = time.Now().UTC()
		return uc.holderRepo.Update(txCtx, tx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// CloseHolder deactivates a holder. Closing an already closed holder succeeds
// without writing anything.
func (uc *HolderUseCase) CloseHolder(ctx context.Context, id string) error {
	closed := false

	err := runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
		holder, err := uc.holderRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if !holder.Close(now) {
			return nil
		}
		closed = true

		if err := uc.holderRepo.Update(txCtx, tx, holder); err != nil {
			return err
		}
		event := domain.NewAccountEvent(uc.idGen.Generate(), domain.EventTypeHolderClosed,
			domain.KindHolder, holder.ID, holder.Name, now)
		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return err
	}

	if closed && uc.metrics != nil {
		uc.metrics.AccountsClosed.WithLabelValues(domain.KindHolder.String()).Inc()
	}

	return nil
}

// runInTx runs fn inside a unit of work bounded by DefaultTransactionTimeout
// and commits when fn succeeds. Errors come back classified by storeErr.
func runInTx(ctx context.Context, txManager TransactionManager, fn func(context.Context, Transaction) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := txManager.Begin(txCtx)
	if err != nil {
		return storeErr(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := fn(txCtx, tx); err != nil {
		return storeErr(err)
	}

	return storeErr(tx.Commit(txCtx))
}
