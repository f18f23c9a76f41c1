package domain

import "time"

// ShareEntry routes a percentage of an account's future income to a
// beneficiary. Entries are evaluated in registration order (Position).
// A percent of zero is never stored; clearing removes the row.
type ShareEntry struct {
	Owner       string
	Beneficiary string
	Percent     uint8
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShareTotal sums the percents of a registry.
func ShareTotal(entries []ShareEntry) int {
	total := 0
	for _, e := range entries {
		total += int(e.Percent)
	}

	return total
}

// ValidateShareTotal enforces the registry invariant: the owner's percents
// may never sum above 100.
func ValidateShareTotal(entries []ShareEntry) error {
	if ShareTotal(entries) > 100 {
		return ErrShareTotalExceeded
	}

	return nil
}

// Payout is one beneficiary's cut of a distributed claim.
type Payout struct {
	Beneficiary string
	Amount      int64
	Percent     uint8
}

// DistributeShares splits total across the entries. Each entry receives
// floor(total*percent/100), truncation favoring the claimant, except
// the entry at which the running percent sum reaches 100, which absorbs all
// of the remainder including the accumulated rounding error and ends the
// distribution. The leftover goes back to the claimant, so
//
//	sum(payouts) + remainder == total
//
// holds exactly. A registry whose total exceeds 100% (which SetShare
// refuses to store) degrades gracefully: later entries starve to zero.
func DistributeShares(total int64, entries []ShareEntry) (payouts []Payout, remainder int64) {
	remainder = total

	pcsum := 0
	for _, e := range entries {
		pcsum += int(e.Percent)

		var amount int64
		if pcsum >= 100 {
			amount = remainder
		} else {
			amount = total * int64(e.Percent) / 100
		}

		remainder -= amount
		payouts = append(payouts, Payout{
			Beneficiary: e.Beneficiary,
			Amount:      amount,
			Percent:     e.Percent,
		})

		if pcsum >= 100 {
			break
		}
	}

	return payouts, remainder
}
