package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/custodyledger/internal/domain"
)

const summaryCacheKey = "ledger:summary"

// LedgerSummary aggregates the whole ledger.
type LedgerSummary struct {
	Deposits         KindTotals
	Withdrawals      KindTotals
	TotalFees        decimal.Decimal
	HolderBalances   decimal.Decimal
	MerchantBalances decimal.Decimal
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
	cache      Cache
	cacheTTL   time.Duration
}

// NewLedgerUseCase creates a new LedgerUseCase. With a nil cache every
// summary is computed from the store.
func NewLedgerUseCase(ledgerRepo LedgerRepository, cache Cache, cacheTTL time.Duration) *LedgerUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultSummaryCacheTTL
	}
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Summary reports transaction counts, volume and fees per kind together with
// the current balance totals of each account kind. Cache failures fall back
// to the store.
func (uc *LedgerUseCase) Summary(ctx context.Context) (*LedgerSummary, error) {
	if uc.cache != nil {
		if raw, found, err := uc.cache.Get(ctx, summaryCacheKey); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("ledger summary cache read failed")
		} else if found {
			var cached LedgerSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	summary, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := uc.cache.Set(ctx, summaryCacheKey, raw, uc.cacheTTL); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("ledger summary cache write failed")
			}
		}
	}

	return summary, nil
}

// InvalidateSummary drops the cached summary so the next Summary call is
// computed from the store.
func (uc *LedgerUseCase) InvalidateSummary(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, summaryCacheKey); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("ledger summary cache invalidation failed")
	}
}

func (uc *LedgerUseCase) compute(ctx context.Context) (*LedgerSummary, error) {
	totals, err := uc.ledgerRepo.TotalsByKind(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	summary := &LedgerSummary{
		Deposits:    KindTotals{Kind: domain.Deposit, Volume: decimal.Zero, Fees: decimal.Zero},
		Withdrawals: KindTotals{Kind: domain.Withdrawal, Volume: decimal.Zero, Fees: decimal.Zero},
		TotalFees:   decimal.Zero,
	}

	for _, t := range totals {
		switch t.Kind {
		case domain.Deposit:
			summary.Deposits = t
		case domain.Withdrawal:
			summary.Withdrawals = t
		default:
			continue
		}
		summary.TotalFees = summary.TotalFees.Add(t.Fees)
	}

	summary.HolderBalances, summary.MerchantBalances, err = uc.ledgerRepo.TotalBalances(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	return summary, nil
}
