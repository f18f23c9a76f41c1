package domain

import (
	"fmt"
	"regexp"
)

// Validation constants
const (
	MaxMemoBytes         = 256
	MaxAccountNameLength = 64
)

// Symbol codes follow the uppercase-letters convention (XDL, EUR, ...).
var symbolRegex = regexp.MustCompile(`^[A-Z]{1,7}$`)

// Account names are lowercase alphanumerics with dots and dashes.
var accountRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-]*$`)

// ValidateSymbol validates a token symbol code.
func ValidateSymbol(symbol string) error {
	if !symbolRegex.MatchString(symbol) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}

	return nil
}

// ValidateAccount validates an account identifier.
func ValidateAccount(account string) error {
	if len(account) == 0 || len(account) > MaxAccountNameLength {
		return ErrInvalidAccount
	}

	if !accountRegex.MatchString(account) {
		return fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}

	return nil
}

// ValidateMemo validates a transfer/issue memo.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoBytes {
		return ErrInvalidMemo
	}

	return nil
}

// ValidatePercent validates a share percentage.
func ValidatePercent(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidPercent
	}

	return nil
}
