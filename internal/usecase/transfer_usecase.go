package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/ubiledger/internal/domain"
)

// TransferUseCase moves tokens between accounts. Every transfer first runs
// an incidental income pass on the sender, so pending decay and UBI are
// settled before the balance moves.
type TransferUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	statsRepo   StatsRepository
	outboxRepo  OutboxRepository
	engine      *IncomeEngine
	authorizer  Authorizer
	idGen       IDGenerator
	retrier     Retrier
	policy      UBIPolicy
}

// NewTransferUseCase creates a new TransferUseCase. retrier may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	statsRepo StatsRepository,
	outboxRepo OutboxRepository,
	engine *IncomeEngine,
	authorizer Authorizer,
	idGen IDGenerator,
	retrier Retrier,
	policy UBIPolicy,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
		outboxRepo:  outboxRepo,
		engine:      engine,
		authorizer:  authorizer,
		idGen:       idGen,
		retrier:     retrier,
		policy:      policy,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	From     string
	To       string
	Quantity domain.Asset
	Memo     string
}

// Transfer moves quantity from one account to another.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) error {
	if input.From == input.To {
		return domain.ErrSelfTransfer
	}

	if err := domain.ValidateAccount(input.From); err != nil {
		return err
	}

	if err := domain.ValidateAccount(input.To); err != nil {
		return err
	}

	if err := input.Quantity.Validate(); err != nil {
		return err
	}

	if err := domain.ValidateMemo(input.Memo); err != nil {
		return err
	}

	if err := uc.authorizer.RequireAuthorized(ctx, input.From); err != nil {
		return err
	}

	// The recipient pays for its own row when it can authorize the call;
	// otherwise storage growth lands on the sender.
	payer := input.From
	if uc.authorizer.HasAuthority(ctx, input.To) {
		payer = input.To
	}

	return uc.withTx(ctx, func(tx Transaction) error {
		stats, err := uc.statsRepo.GetForUpdate(ctx, tx, input.Quantity.Symbol)
		if err != nil {
			return err
		}

		// Settle pending income/decay on the sender before moving funds.
		// This pass never fails the transfer on "nothing due".
		if input.Quantity.Symbol == uc.policy.Symbol {
			if _, err := uc.engine.Run(ctx, tx, input.From, payer, stats, false); err != nil {
				return err
			}
		}

		if err := uc.subBalance(ctx, tx, input.From, input.Quantity); err != nil {
			return err
		}

		if err := uc.addBalance(ctx, tx, input.To, input.Quantity, payer); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   input.From,
			AggregateType: domain.AggregateTypeBalance,
			EventType:     domain.EventTypeTransferred,
			Payload: map[string]any{
				"from":     input.From,
				"to":       input.To,
				"quantity": input.Quantity.String(),
				"memo":     input.Memo,
			},
			CreatedAt: time.Now().UTC(),
		})
	})
}

func (uc *TransferUseCase) subBalance(ctx context.Context, tx Transaction, account string, q domain.Asset) error {
	balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, account, q.Symbol)
	if err != nil {
		return err
	}

	if err := balance.Debit(q.Amount); err != nil {
		return err
	}

	return uc.balanceRepo.Upsert(ctx, tx, balance)
}

func (uc *TransferUseCase) addBalance(ctx context.Context, tx Transaction, account string, q domain.Asset, payer string) error {
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

func (uc *TransferUseCase) withTx(ctx context.Context, fn func(tx Transaction) error) error {
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
