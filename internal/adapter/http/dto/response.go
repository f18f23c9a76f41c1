package dto

import (
	"time"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse represents a balance row in API responses.
type BalanceResponse struct {
	Account      string    `json:"account"`
	Balance      string    `json:"balance"`
	LastClaimDay int64     `json:"last_claim_day"`
	CostPayer    string    `json:"cost_payer,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		Account:      b.Account,
		Balance:      domain.Asset{Amount: b.Amount, Symbol: b.Symbol}.String(),
		LastClaimDay: b.LastClaimDay,
		CostPayer:    b.CostPayer,
		UpdatedAt:    b.UpdatedAt,
	}
}

// SupplyResponse represents the per-symbol aggregate in API responses.
type SupplyResponse struct {
	Symbol    string `json:"symbol"`
	Supply    string `json:"supply"`
	MaxSupply string `json:"max_supply"`
	Issuer    string `json:"issuer"`
	Burned    string `json:"burned"`
	Claims    int64  `json:"claims"`
}

// SupplyFromDomain converts domain token stats to a response.
func SupplyFromDomain(s *domain.TokenStats) *SupplyResponse {
	return &SupplyResponse{
		Symbol:    s.Symbol,
		Supply:    domain.Asset{Amount: s.Supply, Symbol: s.Symbol}.String(),
		MaxSupply: domain.Asset{Amount: s.MaxSupply, Symbol: s.Symbol}.String(),
		Issuer:    s.Issuer,
		Burned:    domain.Asset{Amount: s.Burned, Symbol: s.Symbol}.String(),
		Claims:    s.Claims,
	}
}

// ClaimResponse represents a paid claim in API responses. A claim that paid
// nothing returns Claimed=false with the other fields empty.
type ClaimResponse struct {
	Owner     string `json:"owner"`
	Claimed   bool   `json:"claimed"`
	Quantity  string `json:"quantity,omitempty"`
	NextClaim string `json:"next_claim,omitempty"`
	LostDays  int64  `json:"lost_days,omitempty"`
}

// ClaimFromResult converts a use case claim result to a response.
func ClaimFromResult(owner string, res *usecase.ClaimResult) *ClaimResponse {
	if res == nil {
		return &ClaimResponse{Owner: owner}
	}

	return &ClaimResponse{
		Owner:     res.Owner,
		Claimed:   true,
		Quantity:  res.Quantity.String(),
		NextClaim: res.NextClaim,
		LostDays:  res.LostDays,
	}
}

// ShareResponse represents one share registry entry in API responses.
type ShareResponse struct {
	Beneficiary string `json:"beneficiary"`
	Percent     uint8  `json:"percent"`
	Position    int    `json:"position"`
}

// SharesFromDomain converts registry entries to responses.
func SharesFromDomain(entries []domain.ShareEntry) []*ShareResponse {
	result := make([]*ShareResponse, len(entries))
	for i, e := range entries {
		result[i] = &ShareResponse{
			Beneficiary: e.Beneficiary,
			Percent:     e.Percent,
			Position:    e.Position,
		}
	}
	return result
}

// ConservationResponse represents a conservation audit in API responses.
type ConservationResponse struct {
	Symbol       string    `json:"symbol"`
	Supply       string    `json:"supply"`
	BalanceTotal string    `json:"balance_total"`
	Burned       string    `json:"burned"`
	Consistent   bool      `json:"consistent"`
	CheckedAt    time.Time `json:"checked_at"`
}

// ConservationFromReport converts an audit report to a response.
func ConservationFromReport(r *usecase.ConservationReport) *ConservationResponse {
	return &ConservationResponse{
		Symbol:       r.Symbol,
		Supply:       domain.Asset{Amount: r.Supply, Symbol: r.Symbol}.String(),
		BalanceTotal: domain.Asset{Amount: r.BalanceTotal, Symbol: r.Symbol}.String(),
		Burned:       domain.Asset{Amount: r.Burned, Symbol: r.Symbol}.String(),
		Consistent:   r.Consistent,
		CheckedAt:    r.CheckedAt,
	}
}
