package handler

import (
	"context"
	"net/http"

	"github.com/iho/custodyledger/internal/adapter/http/dto"
	"github.com/iho/custodyledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Summary(ctx context.Context) (*usecase.LedgerSummary, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Summary reports per-kind totals and balance sums.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledgerUC.Summary(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to build ledger summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerSummaryFromUseCase(summary))
}
