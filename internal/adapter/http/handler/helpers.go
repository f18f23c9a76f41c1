package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBalanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTokenExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrClaimedToday):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNothingToClaim):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoCoins):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBalanceNotZero):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrOverdrawnBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSupplyExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrShareTotalExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrSelfShare),
		errors.Is(err, domain.ErrSymbolMismatch),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidAccount),
		errors.Is(err, domain.ErrInvalidPercent),
		errors.Is(err, domain.ErrInvalidMemo):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
