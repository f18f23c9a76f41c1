package usecase

import (
	"context"
	"errors"

	"github.com/iho/ubiledger/internal/domain"
)

// ClaimUseCase handles the UBI claim surface: open, close, claim, claimfor.
type ClaimUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	statsRepo   StatsRepository
	engine      *IncomeEngine
	authorizer  Authorizer
	clock       Clock
	retrier     Retrier
	policy      UBIPolicy
}

// NewClaimUseCase creates a new ClaimUseCase. retrier may be nil.
func NewClaimUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	statsRepo StatsRepository,
	engine *IncomeEngine,
	authorizer Authorizer,
	clock Clock,
	retrier Retrier,
	policy UBIPolicy,
) *ClaimUseCase {
	return &ClaimUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
		engine:      engine,
		authorizer:  authorizer,
		clock:       clock,
		retrier:     retrier,
		policy:      policy,
	}
}

// ClaimResult reports a paid claim back to the caller.
type ClaimResult struct {
	Owner     string
	Quantity  domain.Asset
	NextClaim string
	LostDays  int64
}

// Claim claims pending income for owner, who also pays for storage growth.
func (uc *ClaimUseCase) Claim(ctx context.Context, owner string) (*ClaimResult, error) {
	return uc.ClaimFor(ctx, owner, owner)
}

// ClaimFor claims pending income for owner with a third-party storage-cost
// payer. The payer must authorize the call, not the owner.
func (uc *ClaimUseCase) ClaimFor(ctx context.Context, owner, costPayer string) (*ClaimResult, error) {
	if err := domain.ValidateAccount(owner); err != nil {
		return nil, err
	}

	if err := uc.authorizer.RequireAuthorized(ctx, costPayer); err != nil {
		return nil, err
	}

	// Claiming goes through open: accounts without a balance row get one,
	// and open always checks for pending income.
	return uc.open(ctx, owner, uc.policy.Symbol, costPayer)
}

// Open creates the owner's balance row for symbol if absent and runs an
// incidental income pass. Idempotent for existing rows.
func (uc *ClaimUseCase) Open(ctx context.Context, owner, symbol, costPayer string) (*ClaimResult, error) {
	if err := domain.ValidateAccount(owner); err != nil {
		return nil, err
	}

	if err := domain.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	if err := uc.authorizer.RequireAuthorized(ctx, costPayer); err != nil {
		return nil, err
	}

	return uc.open(ctx, owner, symbol, costPayer)
}

func (uc *ClaimUseCase) open(ctx context.Context, owner, symbol, costPayer string) (*ClaimResult, error) {
	var result *ClaimResult

	err := uc.withTx(ctx, func(tx Transaction) error {
		stats, err := uc.statsRepo.GetForUpdate(ctx, tx, symbol)
		if err != nil {
			return err
		}

		_, err = uc.balanceRepo.GetForUpdate(ctx, tx, owner, symbol)
		if errors.Is(err, domain.ErrBalanceNotFound) {
			err = uc.balanceRepo.Upsert(ctx, tx, &domain.Balance{
				Account:   owner,
				Symbol:    symbol,
				CostPayer: costPayer,
			})
		}
		if err != nil {
			return err
		}

		if symbol != uc.policy.Symbol {
			return nil
		}

		res, err := uc.engine.Run(ctx, tx, owner, costPayer, stats, false)
		if err != nil {
			return err
		}

		if res != nil {
			result = &ClaimResult{
				Owner:     owner,
				Quantity:  domain.Asset{Amount: res.Amount, Symbol: symbol},
				NextClaim: domain.DayToDate(res.NextClaimDay + 1),
				LostDays:  res.LostDays,
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Close deletes the owner's balance row. Only a zero balance with no income
// pending for the current day can be closed.
func (uc *ClaimUseCase) Close(ctx context.Context, owner, symbol string) error {
	if err := uc.authorizer.RequireAuthorized(ctx, owner); err != nil {
		return err
	}

	return uc.withTx(ctx, func(tx Transaction) error {
		balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, owner, symbol)
		if err != nil {
			return err
		}

		if balance.Amount != 0 {
			return domain.ErrBalanceNotZero
		}

		today := domain.EpochDay(uc.clock.NowSeconds())
		if balance.LastClaimDay != 0 && balance.LastClaimDay >= today {
			return domain.ErrClaimedToday
		}

		// During a signup reward window, closing and reopening would farm
		// the bonus; the row has to outlive the window.
		if bonus, ok := uc.policy.Bonus.(domain.SignupWindowBonus); ok && today <= bonus.LastRewardDay {
			return domain.ErrClaimedToday
		}

		return uc.balanceRepo.Delete(ctx, tx, owner, symbol)
	})
}

// withTx runs fn inside a transaction, retrying transient failures when a
// retrier is configured.
func (uc *ClaimUseCase) withTx(ctx context.Context, fn func(tx Transaction) error) error {
	attempt := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if uc.retrier != nil {
		return uc.retrier.Retry(ctx, attempt)
	}

	return attempt()
}

// CurrentDay exposes the current epoch day for read endpoints.
func (uc *ClaimUseCase) CurrentDay() int64 {
	return domain.EpochDay(uc.clock.NowSeconds())
}
