package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/iho/ubiledger/internal/domain"
)

// supplyCacheTTL bounds how stale a cached supply read may be.
const supplyCacheTTL = 5 * time.Second

// TokenUseCase handles token lifecycle: create, issue, retire, burn.
type TokenUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	statsRepo   StatsRepository
	outboxRepo  OutboxRepository
	authorizer  Authorizer
	idGen       IDGenerator
	cache       Cache
}

// NewTokenUseCase creates a new TokenUseCase.
func NewTokenUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	statsRepo StatsRepository,
	outboxRepo OutboxRepository,
	authorizer Authorizer,
	idGen IDGenerator,
) *TokenUseCase {
	return &TokenUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
		outboxRepo:  outboxRepo,
		authorizer:  authorizer,
		idGen:       idGen,
	}
}

// WithCache attaches a read cache for supply lookups. Writes bypass it;
// staleness is bounded by the TTL only.
func (uc *TokenUseCase) WithCache(cache Cache) *TokenUseCase {
	uc.cache = cache
	return uc
}

// CreateTokenInput represents input for creating a token.
type CreateTokenInput struct {
	Issuer    string
	MaxSupply domain.Asset
}

// CreateToken registers a new symbol with an immutable supply ceiling.
func (uc *TokenUseCase) CreateToken(ctx context.Context, input CreateTokenInput) (*domain.TokenStats, error) {
	if err := domain.ValidateAccount(input.Issuer); err != nil {
		return nil, err
	}

	if err := input.MaxSupply.Validate(); err != nil {
		return nil, err
	}

	if err := uc.authorizer.RequireAuthorized(ctx, input.Issuer); err != nil {
		return nil, err
	}

	if _, err := uc.statsRepo.Get(ctx, input.MaxSupply.Symbol); err == nil {
		return nil, domain.ErrTokenExists
	} else if !errors.Is(err, domain.ErrTokenNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	stats := &domain.TokenStats{
		Symbol:    input.MaxSupply.Symbol,
		MaxSupply: input.MaxSupply.Amount,
		Issuer:    input.Issuer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.statsRepo.Create(ctx, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

// IssueInput represents input for issuing tokens.
type IssueInput struct {
	To       string
	Quantity domain.Asset
	Memo     string
}

// Issue mints quantity to the issuer and forwards it to the recipient when
// the recipient is not the issuer itself.
func (uc *TokenUseCase) Issue(ctx context.Context, input IssueInput) error {
	if err := domain.ValidateAccount(input.To); err != nil {
		return err
	}

	if err := input.Quantity.Validate(); err != nil {
		return err
	}

	if err := domain.ValidateMemo(input.Memo); err != nil {
		return err
	}

	return uc.withTx(ctx, func(tx Transaction) error {
		stats, err := uc.statsRepo.GetForUpdate(ctx, tx, input.Quantity.Symbol)
		if err != nil {
			return err
		}

		if err := uc.authorizer.RequireAuthorized(ctx, stats.Issuer); err != nil {
			return err
		}

		if input.Quantity.Amount > stats.Available() {
			return domain.ErrSupplyExceeded
		}

		stats.Supply += input.Quantity.Amount
		if err := uc.statsRepo.Update(ctx, tx, stats); err != nil {
			return err
		}

		// Mint lands on the issuer; a different recipient gets it moved in
		// the same transaction, like an inline transfer.
		if err := uc.addBalance(ctx, tx, stats.Issuer, input.Quantity, stats.Issuer); err != nil {
			return err
		}

		if input.To != stats.Issuer {
			if err := uc.subBalance(ctx, tx, stats.Issuer, input.Quantity); err != nil {
				return err
			}

			if err := uc.addBalance(ctx, tx, input.To, input.Quantity, stats.Issuer); err != nil {
				return err
			}
		}

		return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   stats.Symbol,
			AggregateType: domain.AggregateTypeToken,
			EventType:     domain.EventTypeIssued,
			Payload: map[string]any{
				"to":       input.To,
				"quantity": input.Quantity.String(),
				"memo":     input.Memo,
			},
			CreatedAt: time.Now().UTC(),
		})
	})
}

// Retire permanently destroys quantity from the issuer's own balance.
func (uc *TokenUseCase) Retire(ctx context.Context, quantity domain.Asset, memo string) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	if err := domain.ValidateMemo(memo); err != nil {
		return err
	}

	return uc.withTx(ctx, func(tx Transaction) error {
		stats, err := uc.statsRepo.GetForUpdate(ctx, tx, quantity.Symbol)
		if err != nil {
			return err
		}

		if err := uc.authorizer.RequireAuthorized(ctx, stats.Issuer); err != nil {
			return err
		}

		return uc.destroy(ctx, tx, stats, stats.Issuer, quantity, memo)
	})
}

// Burn permanently destroys quantity from the owner's balance.
func (uc *TokenUseCase) Burn(ctx context.Context, owner string, quantity domain.Asset) error {
	if err := domain.ValidateAccount(owner); err != nil {
		return err
	}

	if err := quantity.Validate(); err != nil {
		return err
	}

	if err := uc.authorizer.RequireAuthorized(ctx, owner); err != nil {
		return err
	}

	return uc.withTx(ctx, func(tx Transaction) error {
		stats, err := uc.statsRepo.GetForUpdate(ctx, tx, quantity.Symbol)
		if err != nil {
			return err
		}

		return uc.destroy(ctx, tx, stats, owner, quantity, "")
	})
}

// destroy removes quantity from an account and from circulation, keeping
// the burned counter monotonic.
func (uc *TokenUseCase) destroy(ctx context.Context, tx Transaction, stats *domain.TokenStats, owner string, quantity domain.Asset, memo string) error {
	if err := uc.subBalance(ctx, tx, owner, quantity); err != nil {
		return err
	}

	stats.Supply -= quantity.Amount
	stats.Burned += quantity.Amount
	if err := uc.statsRepo.Update(ctx, tx, stats); err != nil {
		return err
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   stats.Symbol,
		AggregateType: domain.AggregateTypeToken,
		EventType:     domain.EventTypeRetired,
		Payload: map[string]any{
			"owner":    owner,
			"quantity": quantity.String(),
			"memo":     memo,
		},
		CreatedAt: time.Now().UTC(),
	})
}

// GetSupply retrieves the aggregate record for a symbol.
func (uc *TokenUseCase) GetSupply(ctx context.Context, symbol string) (*domain.TokenStats, error) {
	if err := domain.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	cacheKey := "supply:" + symbol
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var stats domain.TokenStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := uc.statsRepo.Get(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			// Best effort; a failed cache write never fails the read.
			_ = uc.cache.Set(ctx, cacheKey, encoded, supplyCacheTTL)
		}
	}

	return stats, nil
}

// GetBalance retrieves an account's balance row.
func (uc *TokenUseCase) GetBalance(ctx context.Context, account, symbol string) (*domain.Balance, error) {
	if err := domain.ValidateAccount(account); err != nil {
		return nil, err
	}

	if err := domain.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	return uc.balanceRepo.Get(ctx, account, symbol)
}

func (uc *TokenUseCase) subBalance(ctx context.Context, tx Transaction, account string, q domain.Asset) error {
	balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, account, q.Symbol)
	if err != nil {
		return err
	}

	if err := balance.Debit(q.Amount); err != nil {
		return err
	}

	return uc.balanceRepo.Upsert(ctx, tx, balance)
}

func (uc *TokenUseCase) addBalance(ctx context.Context, tx Transaction, account string, q domain.Asset, payer string) error {
	balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, account, q.Symbol)
	if errors.Is(err, domain.ErrBalanceNotFound) {
		balance = &domain.Balance{
			Account:   account,
			Symbol:    q.Symbol,
			CostPayer: payer,
		}
	} else if err != nil {
		return err
	}

	balance.Credit(q.Amount)

	return uc.balanceRepo.Upsert(ctx, tx, balance)
}

func (uc *TokenUseCase) withTx(ctx context.Context, fn func(tx Transaction) error) error {
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
