package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

// TokenHandler handles token lifecycle HTTP requests.
type TokenHandler struct {
	tokenUC *usecase.TokenUseCase
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenUC *usecase.TokenUseCase) *TokenHandler {
	return &TokenHandler{tokenUC: tokenUC}
}

// Create registers a new symbol.
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid max supply", err.Error())
		return
	}

	stats, err := h.tokenUC.CreateToken(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create token", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.SupplyFromDomain(stats))
}

// Issue mints tokens to a recipient.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	var req dto.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(symbol)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quantity", err.Error())
		return
	}

	if err := h.tokenUC.Issue(r.Context(), input); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to issue", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "issued"})
}

// Retire destroys tokens from the issuer's balance.
func (h *TokenHandler) Retire(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	var req dto.RetireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := domain.ParseAmount(req.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quantity", err.Error())
		return
	}

	err = h.tokenUC.Retire(r.Context(), domain.Asset{Amount: amount, Symbol: symbol}, req.Memo)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to retire", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "retired"})
}

// Burn destroys tokens from a holder's balance.
func (h *TokenHandler) Burn(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	var req dto.BurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := domain.ParseAmount(req.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quantity", err.Error())
		return
	}

	err = h.tokenUC.Burn(r.Context(), req.Owner, domain.Asset{Amount: amount, Symbol: symbol})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to burn", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "burned"})
}

// GetSupply retrieves the aggregate record for a symbol.
func (h *TokenHandler) GetSupply(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stats, err := h.tokenUC.GetSupply(r.Context(), symbol)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get supply", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SupplyFromDomain(stats))
}

// GetBalance retrieves an account's balance row.
func (h *TokenHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	symbol := chi.URLParam(r, "symbol")

	balance, err := h.tokenUC.GetBalance(r.Context(), account, symbol)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}
