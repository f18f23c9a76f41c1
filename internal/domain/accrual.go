package domain

// MaxPastClaimDays is the default accumulation ceiling: income older than
// this many days is permanently lost.
const MaxPastClaimDays = 360

// BonusPolicy decides the emulated last-claim day for an account that has
// never claimed before (stored anchor of zero). The returned value is used
// as the claim window start, so pushing it into the past grants back-pay.
//
// The deployed ledger picks exactly one policy; the historical variants are
// not dead code paths but alternative implementations of this interface.
type BonusPolicy interface {
	Backdate(today int64) int64
}

// NoBonus grants exactly one day of income on the first claim.
type NoBonus struct{}

func (NoBonus) Backdate(today int64) int64 {
	return today - 1
}

// SignupWindowBonus grants accounts claiming on or before LastRewardDay a
// back-pay bonus of the days remaining until the deadline, capped at MaxDays.
type SignupWindowBonus struct {
	LastRewardDay int64
	MaxDays       int64
}

func (b SignupWindowBonus) Backdate(today int64) int64 {
	curr := today - 1

	if today <= b.LastRewardDay {
		bonus := b.LastRewardDay - today + 1
		if bonus > b.MaxDays {
			bonus = b.MaxDays
		}

		curr -= bonus
	}

	return curr
}

// FlatBonus grants every new account a fixed number of accumulated days.
type FlatBonus struct {
	Days int64
}

func (b FlatBonus) Backdate(today int64) int64 {
	return today - 1 - b.Days
}

// AccrualResult is the outcome of one income computation.
type AccrualResult struct {
	// Amount is the claimable quantity in base units after the supply clamp.
	Amount int64
	// PaidDays is Amount converted back to whole days of income.
	PaidDays int64
	// LostDays counts back-pay beyond the accumulation ceiling, forfeited.
	LostDays int64
	// NextClaimDay is the new claim-window anchor: curr + LostDays + PaidDays.
	// It trails today only when the supply clamp truncated the payout.
	NextClaimDay int64
}

// ComputeAccrual calculates the income owed for the window (curr, today].
// curr is the claim anchor as it stood before this pass and must be a real
// day (never-claimed accounts go through a BonusPolicy first). maxPastDays
// caps back-pay; available clamps issuance to the supply ceiling.
//
// Returns ErrNothingToClaim when curr >= today. A result with Amount == 0
// means the supply clamp swallowed the whole payment; the caller decides
// whether that is a silent no-op or a hard failure.
func ComputeAccrual(curr, today, maxPastDays, available int64) (AccrualResult, error) {
	if curr >= today {
		return AccrualResult{}, ErrNothingToClaim
	}

	// Back-pay excludes today; claiming daily keeps this at zero.
	claimDays := today - curr - 1

	var lostDays int64
	if claimDays > maxPastDays {
		lostDays = claimDays - maxPastDays
		claimDays = maxPastDays
	}

	// Today's own day.
	claimDays++

	amount := claimDays * PrecisionMultiplier
	if amount > available {
		amount = available
	}

	if amount < 0 {
		amount = 0
	}

	paidDays := amount / PrecisionMultiplier

	return AccrualResult{
		Amount:       amount,
		PaidDays:     paidDays,
		LostDays:     lostDays,
		NextClaimDay: curr + lostDays + paidDays,
	}, nil
}
