package usecase

import "github.com/iho/ubiledger/internal/domain"

// UBIPolicy bundles the deployment-time income knobs. Exactly one policy
// is wired at startup; none of these change at runtime.
type UBIPolicy struct {
	// Symbol is the single token the income engine operates on.
	Symbol string
	// MaxPastClaimDays caps back-pay accumulation; older days are forfeited.
	MaxPastClaimDays int64
	// Decay is the demurrage applied at every claim-evaluation point.
	Decay domain.DecayPolicy
	// Bonus decides the first claim of a never-evaluated account.
	Bonus domain.BonusPolicy
}

// DefaultUBIPolicy mirrors the deployed ledger: XDL, 360-day ceiling,
// 0.1%/year demurrage, no signup bonus.
func DefaultUBIPolicy() UBIPolicy {
	return UBIPolicy{
		Symbol:           "XDL",
		MaxPastClaimDays: domain.MaxPastClaimDays,
		Decay:            domain.DecayPolicy{AnnualRate: domain.DefaultAnnualDecayRate},
		Bonus:            domain.NoBonus{},
	}
}
