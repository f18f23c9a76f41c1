package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/usecase"
)

// ShareHandler handles share registry HTTP requests.
type ShareHandler struct {
	shareUC *usecase.ShareUseCase
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareUC *usecase.ShareUseCase) *ShareHandler {
	return &ShareHandler{shareUC: shareUC}
}

// Set inserts, updates, or clears one share entry for the owner.
func (h *ShareHandler) Set(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "account")

	var req dto.SetShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.shareUC.SetShare(r.Context(), owner, req.Beneficiary, req.Percent); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to set share", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List returns the owner's registry in registration order.
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "account")

	entries, err := h.shareUC.ListShares(r.Context(), owner)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list shares", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SharesFromDomain(entries))
}

// Reset deletes the owner's whole registry.
func (h *ShareHandler) Reset(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "account")

	if err := h.shareUC.ResetShare(r.Context(), owner); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reset shares", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
