package domain

import "math"

// DefaultAnnualDecayRate is the demurrage taken from held balances,
// 0.1% per 365-day year, applied continuously.
const DefaultAnnualDecayRate = 0.001

// DecayPolicy computes the demurrage shrinkage of a balance over elapsed
// whole days. The decay factor is the only floating-point computation in
// the ledger; balances themselves stay integer.
type DecayPolicy struct {
	AnnualRate float64
}

// Shrink returns the balance after elapsedDays of decay and the amount
// burned. The burn is never negative and never exceeds the balance, so
// applying it cannot fail.
func (p DecayPolicy) Shrink(amount, elapsedDays int64) (newAmount, burned int64) {
	if elapsedDays <= 0 || amount <= 0 {
		return amount, 0
	}

	factor := math.Pow(1-p.AnnualRate, float64(elapsedDays)/365)
	newAmount = int64(math.Floor(float64(amount) * factor))
	if newAmount > amount {
		newAmount = amount
	}

	return newAmount, amount - newAmount
}
