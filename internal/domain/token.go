package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SymbolPrecision is the fixed number of decimal places for every token.
// One whole token of daily income equals PrecisionMultiplier base units.
const (
	SymbolPrecision     = 4
	PrecisionMultiplier = int64(10000)
)

// Asset is a token quantity in integer base units together with its symbol.
type Asset struct {
	Amount int64
	Symbol string
}

// NewAsset builds an asset from whole tokens.
func NewAsset(tokens int64, symbol string) Asset {
	return Asset{Amount: tokens * PrecisionMultiplier, Symbol: symbol}
}

// Validate checks the asset for a well-formed symbol and a positive amount.
func (a Asset) Validate() error {
	if err := ValidateSymbol(a.Symbol); err != nil {
		return err
	}

	if a.Amount <= 0 {
		return ErrInvalidQuantity
	}

	return nil
}

// String renders the asset as "12.3456 XDL".
func (a Asset) String() string {
	return fmt.Sprintf("%s %s", FormatAmount(a.Amount), a.Symbol)
}

// FormatAmount renders base units as a fixed-point decimal string.
func FormatAmount(amount int64) string {
	return decimal.New(amount, -SymbolPrecision).StringFixed(SymbolPrecision)
}

// ParseAmount converts a decimal string such as "12.3456" into base units.
// More fractional digits than the symbol precision are rejected.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQuantity, s)
	}

	scaled := d.Shift(SymbolPrecision)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: more than %d decimal places", ErrInvalidQuantity, SymbolPrecision)
	}

	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidQuantity)
	}

	return scaled.IntPart(), nil
}

// Balance is the per (account, symbol) row. LastClaimDay is the epoch day
// through which the balance has been decayed and income has been paid;
// zero means the account has never been evaluated.
type Balance struct {
	Account      string
	Symbol       string
	Amount       int64
	LastClaimDay int64
	CostPayer    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Debit removes amount base units, rejecting overdrafts.
func (b *Balance) Debit(amount int64) error {
	if amount > b.Amount {
		return ErrOverdrawnBalance
	}

	b.Amount -= amount

	return nil
}

// Credit adds amount base units.
func (b *Balance) Credit(amount int64) {
	b.Amount += amount
}

// TokenStats is the per-symbol aggregate row. Supply always equals the sum
// of all balances for the symbol; Burned is monotonically non-decreasing.
type TokenStats struct {
	Symbol    string
	Supply    int64
	MaxSupply int64
	Issuer    string
	Burned    int64
	Claims    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available returns the remaining issuable amount under the supply ceiling.
func (s *TokenStats) Available() int64 {
	return s.MaxSupply - s.Supply
}
