package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/infrastructure/metrics"
)

// IncomeEngine runs the decay-then-accrual pass for one account. Both steps
// share the same day-advance event and commit (or roll back) together with
// the surrounding operation: decay is a tax on the existing balance, accrual
// a credit of new balance, and no observer may see one without the other.
type IncomeEngine struct {
	balanceRepo BalanceRepository
	statsRepo   StatsRepository
	shareRepo   ShareRepository
	outboxRepo  OutboxRepository
	clock       Clock
	eligibility EligibilityChecker
	idGen       IDGenerator
	policy      UBIPolicy
	metrics     *metrics.Metrics
}

// NewIncomeEngine creates a new IncomeEngine.
func NewIncomeEngine(
	balanceRepo BalanceRepository,
	statsRepo StatsRepository,
	shareRepo ShareRepository,
	outboxRepo OutboxRepository,
	clock Clock,
	eligibility EligibilityChecker,
	idGen IDGenerator,
	policy UBIPolicy,
) *IncomeEngine {
	if eligibility == nil {
		eligibility = AlwaysEligible{}
	}

	return &IncomeEngine{
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
		shareRepo:   shareRepo,
		outboxRepo:  outboxRepo,
		clock:       clock,
		eligibility: eligibility,
		idGen:       idGen,
		policy:      policy,
	}
}

// WithMetrics attaches Prometheus counters to the engine. Without it the
// engine runs uninstrumented.
func (e *IncomeEngine) WithMetrics(m *metrics.Metrics) *IncomeEngine {
	e.metrics = m
	return e
}

// Run evaluates pending decay and income for owner within tx. stats must be
// row-locked by the caller and is mutated in place. payer attributes the
// storage cost of any balance rows created by share payouts.
//
// With fail=false the pass is incidental (transfer/open) and "nothing due"
// is a silent no-op; with fail=true the caller demanded income and the same
// condition is a hard error. Returns the accrual outcome, or nil when the
// pass paid nothing.
func (e *IncomeEngine) Run(ctx context.Context, tx Transaction, owner, payer string, stats *domain.TokenStats, fail bool) (*domain.AccrualResult, error) {
	if !e.eligibility.IsEligible(ctx, owner) {
		if fail {
			return nil, domain.ErrNotEligible
		}

		return nil, nil
	}

	balance, err := e.balanceRepo.GetForUpdate(ctx, tx, owner, e.policy.Symbol)
	if err != nil {
		return nil, err
	}

	today := domain.EpochDay(e.clock.NowSeconds())
	curr := balance.LastClaimDay

	if curr != 0 && curr >= today {
		if fail {
			return nil, domain.ErrNothingToClaim
		}

		return nil, nil
	}

	// Demurrage for the elapsed whole days. Runs regardless of whether any
	// income is pending; both share this claim-evaluation point.
	decayed := false
	if curr > 0 {
		newAmount, burned := e.policy.Decay.Shrink(balance.Amount, today-curr)
		if burned > 0 {
			balance.Amount = newAmount
			stats.Supply -= burned
			stats.Burned += burned

			if e.metrics != nil {
				e.metrics.DecayBurned.Add(float64(burned))
			}
		}

		decayed = true
	}

	// A zero anchor means never evaluated; the bonus policy decides how far
	// into the past the emulated last claim lands.
	effCurr := curr
	if curr == 0 {
		effCurr = e.policy.Bonus.Backdate(today)
	}

	res, err := domain.ComputeAccrual(effCurr, today, e.policy.MaxPastClaimDays, stats.Available())
	if err != nil && !errors.Is(err, domain.ErrNothingToClaim) {
		return nil, err
	}

	if err != nil || res.Amount <= 0 {
		// Nothing to pay. A decay that already ran still advances the
		// anchor so it is applied at most once per day.
		if decayed {
			balance.LastClaimDay = today
			if err := e.balanceRepo.Upsert(ctx, tx, balance); err != nil {
				return nil, err
			}
			if err := e.statsRepo.Update(ctx, tx, stats); err != nil {
				return nil, err
			}
		}

		if fail {
			return nil, domain.ErrNoCoins
		}

		return nil, nil
	}

	stats.Supply += res.Amount
	stats.Claims++
	balance.LastClaimDay = res.NextClaimDay

	if e.metrics != nil {
		e.metrics.ClaimsPaid.Inc()
		e.metrics.IncomePaid.Add(float64(res.Amount))
		e.metrics.DaysForfeited.Add(float64(res.LostDays))
	}

	if err := e.logIncome(ctx, tx, owner, res); err != nil {
		return nil, err
	}

	// The payment is split across the owner's share registry; whatever the
	// entries do not absorb returns to the owner. Distribution conserves
	// the claimed amount exactly.
	entries, err := e.shareRepo.ListByOwnerForUpdate(ctx, tx, owner)
	if err != nil {
		return nil, err
	}

	payouts, remainder := domain.DistributeShares(res.Amount, entries)
	for _, p := range payouts {
		if err := e.logShare(ctx, tx, owner, p); err != nil {
			return nil, err
		}

		if p.Amount == 0 {
			continue
		}

		if err := e.addBalance(ctx, tx, p.Beneficiary, p.Amount, payer); err != nil {
			return nil, err
		}

		if e.metrics != nil {
			e.metrics.SharePayouts.Inc()
		}
	}

	balance.Credit(remainder)

	if err := e.balanceRepo.Upsert(ctx, tx, balance); err != nil {
		return nil, err
	}

	if err := e.statsRepo.Update(ctx, tx, stats); err != nil {
		return nil, err
	}

	return &res, nil
}

// addBalance credits an account, creating the zero-initialized balance row
// on first contact with payer as the storage-cost attribution.
func (e *IncomeEngine) addBalance(ctx context.Context, tx Transaction, account string, amount int64, payer string) error {
	balance, err := e.balanceRepo.GetForUpdate(ctx, tx, account, e.policy.Symbol)
	if errors.Is(err, domain.ErrBalanceNotFound) {
		balance = &domain.Balance{
			Account:   account,
			Symbol:    e.policy.Symbol,
			CostPayer: payer,
		}
	} else if err != nil {
		return err
	}

	balance.Credit(amount)

	return e.balanceRepo.Upsert(ctx, tx, balance)
}

func (e *IncomeEngine) logIncome(ctx context.Context, tx Transaction, owner string, res domain.AccrualResult) error {
	return e.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            e.idGen.Generate(),
		AggregateID:   owner,
		AggregateType: domain.AggregateTypeBalance,
		EventType:     domain.EventTypeIncomePaid,
		Payload: map[string]any{
			"to":         owner,
			"quantity":   domain.Asset{Amount: res.Amount, Symbol: e.policy.Symbol}.String(),
			"next_claim": domain.DayToDate(res.NextClaimDay + 1),
			"lost_days":  res.LostDays,
		},
		CreatedAt: time.Now().UTC(),
	})
}

func (e *IncomeEngine) logShare(ctx context.Context, tx Transaction, owner string, p domain.Payout) error {
	return e.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            e.idGen.Generate(),
		AggregateID:   owner,
		AggregateType: domain.AggregateTypeBalance,
		EventType:     domain.EventTypeIncomeShared,
		Payload: map[string]any{
			"from":     owner,
			"to":       p.Beneficiary,
			"quantity": domain.Asset{Amount: p.Amount, Symbol: e.policy.Symbol}.String(),
			"percent":  p.Percent,
		},
		CreatedAt: time.Now().UTC(),
	})
}
