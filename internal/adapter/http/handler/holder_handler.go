package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/custodyledger/internal/adapter/http/dto"
	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

// HolderService defines the behavior needed by HolderHandler.
type HolderService interface {
	OpenHolder(ctx context.Context, input usecase.OpenHolderInput) (*domain.AccountHolder, error)
	GetHolder(ctx context.Context, id string) (*domain.AccountHolder, error)
	ListHolders(ctx context.Context, input usecase.ListHoldersInput) ([]*domain.AccountHolder, error)
	UpdateHolder(ctx context.Context, id string, patch domain.HolderPatch) (*domain.AccountHolder, error)
	CloseHolder(ctx context.Context, id string) error
}

// HolderHandler handles account holder HTTP requests.
type HolderHandler struct {
	holderUC HolderService
}

// NewHolderHandler creates a new HolderHandler.
func NewHolderHandler(holderUC HolderService) *HolderHandler {
	return &HolderHandler{holderUC: holderUC}
}

// Create opens a new account holder.
func (h *HolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenHolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	holder, err := h.holderUC.OpenHolder(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to open holder", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.HolderFromDomain(holder))
}

// Get retrieves a holder by ID.
func (h *HolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	holder, err := h.holderUC.GetHolder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get holder", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HolderFromDomain(holder))
}

// List lists holders.
func (h *HolderHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListHoldersInput{
		Limit:  parseIntQuery(r, "limit", domain.DefaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}

	holders, err := h.holderUC.ListHolders(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to list holders", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.HolderResponse]{
		Items:  dto.HoldersFromDomain(holders),
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// Update changes a holder's name or email.
func (h *HolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateHolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holder, err := h.holderUC.UpdateHolder(r.Context(), chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		writeDomainError(w, r, "failed to update holder", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HolderFromDomain(holder))
}

// Close deactivates a holder. Closing a closed holder succeeds.
func (h *HolderHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.holderUC.CloseHolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, "failed to close holder", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
