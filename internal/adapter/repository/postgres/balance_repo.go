package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

const balanceColumns = `account, symbol, amount, last_claim_day, cost_payer, created_at, updated_at`

// Get retrieves a balance row.
func (r *BalanceRepository) Get(ctx context.Context, account, symbol string) (*domain.Balance, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM balances WHERE account = $1 AND symbol = $2`,
		account, symbol,
	)

	return scanBalance(row)
}

// GetForUpdate retrieves a balance row with a FOR UPDATE lock.
func (r *BalanceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, account, symbol string) (*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM balances WHERE account = $1 AND symbol = $2 FOR UPDATE`,
		account, symbol,
	)

	return scanBalance(row)
}

// Upsert inserts or updates a balance row within a transaction.
func (r *BalanceRepository) Upsert(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	pgxTx := tx.(*Tx).PgxTx()

	now := time.Now().UTC()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO balances (account, symbol, amount, last_claim_day, cost_payer, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 ON CONFLICT (account, symbol) DO UPDATE
		 SET amount = EXCLUDED.amount,
		     last_claim_day = EXCLUDED.last_claim_day,
		     updated_at = EXCLUDED.updated_at`,
		balance.Account, balance.Symbol, balance.Amount, balance.LastClaimDay, balance.CostPayer, now,
	)

	return err
}

// Delete removes a balance row within a transaction.
func (r *BalanceRepository) Delete(ctx context.Context, tx usecase.Transaction, account, symbol string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`DELETE FROM balances WHERE account = $1 AND symbol = $2`,
		account, symbol,
	)

	return err
}

// SumAmounts totals all balances for a symbol, for conservation audits.
func (r *BalanceRepository) SumAmounts(ctx context.Context, symbol string) (int64, error) {
	var total int64

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM balances WHERE symbol = $1`,
		symbol,
	).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var b domain.Balance

	err := row.Scan(&b.Account, &b.Symbol, &b.Amount, &b.LastClaimDay, &b.CostPayer, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	return &b, nil
}
