package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/custodyledger/internal/adapter/http/dto"
	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/usecase"
)

// MerchantService defines the behavior needed by MerchantHandler.
type MerchantService interface {
	OpenMerchant(ctx context.Context, input usecase.OpenMerchantInput) (*domain.Merchant, error)
	GetMerchant(ctx context.Context, id string) (*domain.Merchant, error)
	ListMerchants(ctx context.Context, input usecase.ListMerchantsInput) ([]*domain.Merchant, error)
	UpdateMerchant(ctx context.Context, id string, patch domain.MerchantPatch) (*domain.Merchant, error)
	CloseMerchant(ctx context.Context, id string) error
}

// MerchantHandler handles merchant HTTP requests.
type MerchantHandler struct {
	merchantUC MerchantService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(merchantUC MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantUC: merchantUC}
}

// Create opens a new merchant.
func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenMerchantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	merchant, err := h.merchantUC.OpenMerchant(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to open merchant", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MerchantFromDomain(merchant))
}

// Get retrieves a merchant by ID.
func (h *MerchantHandler) Get(w http.ResponseWriter, r *http.Request) {
	merchant, err := h.merchantUC.GetMerchant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get merchant", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantFromDomain(merchant))
}

// List lists merchants.
func (h *MerchantHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListMerchantsInput{
		Limit:  parseIntQuery(r, "limit", domain.DefaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}

	merchants, err := h.merchantUC.ListMerchants(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to list merchants", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.MerchantResponse]{
		Items:  dto.MerchantsFromDomain(merchants),
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// Update changes a merchant's name, email or fee rate.
func (h *MerchantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMerchantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	merchant, err := h.merchantUC.UpdateMerchant(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, r, "failed to update merchant", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantFromDomain(merchant))
}

// Close deactivates a merchant.
func (h *MerchantHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.merchantUC.CloseMerchant(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, "failed to close merchant", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
