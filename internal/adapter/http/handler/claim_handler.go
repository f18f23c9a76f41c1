package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/usecase"
)

// ClaimHandler handles UBI claim and balance lifecycle HTTP requests.
type ClaimHandler struct {
	claimUC *usecase.ClaimUseCase
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimUC *usecase.ClaimUseCase) *ClaimHandler {
	return &ClaimHandler{claimUC: claimUC}
}

// Claim claims pending income. With cost_payer set, a third party sponsors
// the storage cost of rows the claim creates.
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req dto.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var (
		res *usecase.ClaimResult
		err error
	)

	if req.CostPayer != "" && req.CostPayer != req.Owner {
		res, err = h.claimUC.ClaimFor(r.Context(), req.Owner, req.CostPayer)
	} else {
		res, err = h.claimUC.Claim(r.Context(), req.Owner)
	}

	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to claim", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ClaimFromResult(req.Owner, res))
}

// Open creates a balance row for an account, running an income pass for
// the UBI symbol.
func (h *ClaimHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res, err := h.claimUC.Open(r.Context(), req.Owner, req.Symbol, req.Owner)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to open balance", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ClaimFromResult(req.Owner, res))
}

// Close deletes a zero balance row.
func (h *ClaimHandler) Close(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	symbol := chi.URLParam(r, "symbol")

	if err := h.claimUC.Close(r.Context(), account, symbol); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to close balance", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
