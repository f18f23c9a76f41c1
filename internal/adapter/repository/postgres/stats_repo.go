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

// StatsRepository implements usecase.StatsRepository.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

const statsColumns = `symbol, supply, max_supply, issuer, burned, claims, created_at, updated_at`

// Create registers a new symbol.
func (r *StatsRepository) Create(ctx context.Context, stats *domain.TokenStats) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO token_stats (symbol, supply, max_supply, issuer, burned, claims, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		stats.Symbol, stats.Supply, stats.MaxSupply, stats.Issuer,
		stats.Burned, stats.Claims, stats.CreatedAt, stats.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTokenExists
		}

		return err
	}

	return nil
}

// Get retrieves the aggregate row for a symbol.
func (r *StatsRepository) Get(ctx context.Context, symbol string) (*domain.TokenStats, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+statsColumns+` FROM token_stats WHERE symbol = $1`,
		symbol,
	)

	return scanStats(row)
}

// GetForUpdate retrieves the aggregate row with a FOR UPDATE lock. Every
// supply-mutating operation takes this lock first, which serializes all
// writers of one symbol.
func (r *StatsRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, symbol string) (*domain.TokenStats, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx,
		`SELECT `+statsColumns+` FROM token_stats WHERE symbol = $1 FOR UPDATE`,
		symbol,
	)

	return scanStats(row)
}

// Update persists the mutable aggregate fields within a transaction.
func (r *StatsRepository) Update(ctx context.Context, tx usecase.Transaction, stats *domain.TokenStats) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE token_stats
		 SET supply = $2, burned = $3, claims = $4, updated_at = $5
		 WHERE symbol = $1`,
		stats.Symbol, stats.Supply, stats.Burned, stats.Claims, time.Now().UTC(),
	)

	return err
}

func scanStats(row pgx.Row) (*domain.TokenStats, error) {
	var s domain.TokenStats

	err := row.Scan(&s.Symbol, &s.Supply, &s.MaxSupply, &s.Issuer, &s.Burned, &s.Claims, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}

		return nil, err
	}

	return &s, nil
}
