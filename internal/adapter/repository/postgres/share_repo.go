package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

// ShareRepository implements usecase.ShareRepository. The position column
// is a per-owner sequence that preserves registration order; updates keep
// the original position.
type ShareRepository struct {
	pool *pgxpool.Pool
}

// NewShareRepository creates a new ShareRepository.
func NewShareRepository(pool *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{pool: pool}
}

const shareColumns = `owner_account, beneficiary, percent, position, created_at, updated_at`

// ListByOwner returns the owner's registry in registration order.
func (r *ShareRepository) ListByOwner(ctx context.Context, owner string) ([]domain.ShareEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE owner_account = $1 ORDER BY position`,
		owner,
	)
	if err != nil {
		return nil, err
	}

	return scanShares(rows)
}

// ListByOwnerForUpdate returns the owner's registry in registration order
// with FOR UPDATE locks on every row.
func (r *ShareRepository) ListByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, owner string) ([]domain.ShareEntry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE owner_account = $1 ORDER BY position FOR UPDATE`,
		owner,
	)
	if err != nil {
		return nil, err
	}

	return scanShares(rows)
}

// Upsert inserts or updates one registry entry within a transaction. New
// entries take the next position; existing ones keep theirs.
func (r *ShareRepository) Upsert(ctx context.Context, tx usecase.Transaction, entry *domain.ShareEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO shares (owner_account, beneficiary, percent, position, created_at, updated_at)
		 VALUES ($1, $2, $3,
		         (SELECT COALESCE(MAX(position), -1) + 1 FROM shares WHERE owner_account = $1),
		         $4, $4)
		 ON CONFLICT (owner_account, beneficiary) DO UPDATE
		 SET percent = EXCLUDED.percent,
		     updated_at = EXCLUDED.updated_at`,
		entry.Owner, entry.Beneficiary, int16(entry.Percent), entry.UpdatedAt,
	)

	return err
}

// Delete removes one registry entry within a transaction.
func (r *ShareRepository) Delete(ctx context.Context, tx usecase.Transaction, owner, beneficiary string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`DELETE FROM shares WHERE owner_account = $1 AND beneficiary = $2`,
		owner, beneficiary,
	)

	return err
}

// DeleteAll removes the owner's whole registry within a transaction.
func (r *ShareRepository) DeleteAll(ctx context.Context, tx usecase.Transaction, owner string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`DELETE FROM shares WHERE owner_account = $1`,
		owner,
	)

	return err
}

func scanShares(rows pgx.Rows) ([]domain.ShareEntry, error) {
	defer rows.Close()

	var entries []domain.ShareEntry

	for rows.Next() {
		var (
			e       domain.ShareEntry
			percent int16
		)

		if err := rows.Scan(&e.Owner, &e.Beneficiary, &percent, &e.Position, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}

		e.Percent = uint8(percent)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
