package usecase

import (
	"context"
	"time"

	"github.com/iho/ubiledger/internal/domain"
)

// SupplyAuditUseCase verifies the ledger-wide conservation invariant:
// a symbol's recorded supply must equal the sum of all its balances.
type SupplyAuditUseCase struct {
	balanceRepo BalanceRepository
	statsRepo   StatsRepository
}

// NewSupplyAuditUseCase creates a new SupplyAuditUseCase.
func NewSupplyAuditUseCase(balanceRepo BalanceRepository, statsRepo StatsRepository) *SupplyAuditUseCase {
	return &SupplyAuditUseCase{
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
	}
}

// ConservationReport is the result of one audit pass.
type ConservationReport struct {
	Symbol       string
	Supply       int64
	BalanceTotal int64
	MaxSupply    int64
	Burned       int64
	Consistent   bool
	CheckedAt    time.Time
}

// CheckConservation audits one symbol. Consistent requires both the
// conservation equality and the supply ceiling 0 <= supply <= max_supply.
func (uc *SupplyAuditUseCase) CheckConservation(ctx context.Context, symbol string) (*ConservationReport, error) {
	if err := domain.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	stats, err := uc.statsRepo.Get(ctx, symbol)
	if err != nil {
		return nil, err
	}

	total, err := uc.balanceRepo.SumAmounts(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &ConservationReport{
		Symbol:       symbol,
		Supply:       stats.Supply,
		BalanceTotal: total,
		MaxSupply:    stats.MaxSupply,
		Burned:       stats.Burned,
		Consistent:   stats.Supply == total && stats.Supply >= 0 && stats.Supply <= stats.MaxSupply,
		CheckedAt:    time.Now().UTC(),
	}, nil
}
