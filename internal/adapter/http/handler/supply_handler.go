package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/usecase"
)

// SupplyHandler handles conservation audit HTTP requests.
type SupplyHandler struct {
	auditUC *usecase.SupplyAuditUseCase
}

// NewSupplyHandler creates a new SupplyHandler.
func NewSupplyHandler(auditUC *usecase.SupplyAuditUseCase) *SupplyHandler {
	return &SupplyHandler{auditUC: auditUC}
}

// CheckConservation audits one symbol: recorded supply against the sum of
// all balances, and the supply ceiling.
func (h *SupplyHandler) CheckConservation(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	report, err := h.auditUC.CheckConservation(r.Context(), symbol)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check conservation", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ConservationFromReport(report))
}
