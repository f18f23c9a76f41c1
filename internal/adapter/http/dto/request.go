package dto

import (
	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

// CreateTokenRequest represents a request to register a new symbol.
// MaxSupply is a decimal string like "1000000000.0000".
type CreateTokenRequest struct {
	Issuer    string `json:"issuer"`
	MaxSupply string `json:"max_supply"`
	Symbol    string `json:"symbol"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTokenRequest) ToUseCaseInput() (usecase.CreateTokenInput, error) {
	amount, err := domain.ParseAmount(r.MaxSupply)
	if err != nil {
		return usecase.CreateTokenInput{}, err
	}

	return usecase.CreateTokenInput{
		Issuer:    r.Issuer,
		MaxSupply: domain.Asset{Amount: amount, Symbol: r.Symbol},
	}, nil
}

// IssueRequest represents a request to mint tokens.
type IssueRequest struct {
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

// ToUseCaseInput converts to use case input for the given symbol.
func (r *IssueRequest) ToUseCaseInput(symbol string) (usecase.IssueInput, error) {
	amount, err := domain.ParseAmount(r.Quantity)
	if err != nil {
		return usecase.IssueInput{}, err
	}

	return usecase.IssueInput{
		To:       r.To,
		Quantity: domain.Asset{Amount: amount, Symbol: symbol},
		Memo:     r.Memo,
	}, nil
}

// RetireRequest represents a request to destroy issuer-held tokens.
type RetireRequest struct {
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

// BurnRequest represents a request to destroy a holder's tokens.
type BurnRequest struct {
	Owner    string `json:"owner"`
	Quantity string `json:"quantity"`
}

// CreateTransferRequest represents a request to move tokens.
type CreateTransferRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput(symbol string) (usecase.TransferInput, error) {
	amount, err := domain.ParseAmount(r.Quantity)
	if err != nil {
		return usecase.TransferInput{}, err
	}

	return usecase.TransferInput{
		From:     r.From,
		To:       r.To,
		Quantity: domain.Asset{Amount: amount, Symbol: symbol},
		Memo:     r.Memo,
	}, nil
}

// ClaimRequest represents a request to claim pending income. CostPayer is
// optional; when set the claim is sponsored and the payer must be the
// authenticated caller.
type ClaimRequest struct {
	Owner     string `json:"owner"`
	CostPayer string `json:"cost_payer,omitempty"`
}

// OpenBalanceRequest represents a request to open a balance row.
type OpenBalanceRequest struct {
	Owner  string `json:"owner"`
	Symbol string `json:"symbol"`
}

// SetShareRequest represents a request to set or clear a share entry.
// A percent of zero clears the entry.
type SetShareRequest struct {
	Beneficiary string `json:"beneficiary"`
	Percent     int    `json:"percent"`
}
