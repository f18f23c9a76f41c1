package domain

import "errors"

var (
	// Token errors
	ErrTokenExists    = errors.New("token with symbol already exists")
	ErrTokenNotFound  = errors.New("token with symbol does not exist")
	ErrSupplyExceeded = errors.New("quantity exceeds available supply")

	// Balance errors
	ErrBalanceNotFound  = errors.New("no balance object found")
	ErrOverdrawnBalance = errors.New("overdrawn balance")
	ErrBalanceNotZero   = errors.New("cannot close because the balance is not zero")
	ErrClaimedToday     = errors.New("income was already claimed for today")

	// Claim errors
	ErrNothingToClaim = errors.New("no pending income to claim")
	ErrNoCoins        = errors.New("no coins")
	ErrNotEligible    = errors.New("account is not eligible for income")

	// Share errors
	ErrShareTotalExceeded = errors.New("share total would exceed 100%")
	ErrSelfShare          = errors.New("cannot set a share to self")

	// Transfer errors
	ErrSelfTransfer   = errors.New("cannot transfer to self")
	ErrSymbolMismatch = errors.New("symbol precision mismatch")

	// Validation errors
	ErrInvalidSymbol   = errors.New("invalid symbol name")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAccount  = errors.New("invalid account name")
	ErrInvalidPercent  = errors.New("invalid percent value")
	ErrInvalidMemo     = errors.New("memo has more than 256 bytes")

	// Authorization
	ErrNotAuthorized = errors.New("missing required authority")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
)
