package usecase

import (
	"context"
	"time"

	"github.com/iho/ubiledger/internal/domain"
)

// BalanceRepository defines data access for per-account balance rows.
type BalanceRepository interface {
	Get(ctx context.Context, account, symbol string) (*domain.Balance, error)
	GetForUpdate(ctx context.Context, tx Transaction, account, symbol string) (*domain.Balance, error)
	Upsert(ctx context.Context, tx Transaction, balance *domain.Balance) error
	Delete(ctx context.Context, tx Transaction, account, symbol string) error
	SumAmounts(ctx context.Context, symbol string) (int64, error)
}

// StatsRepository defines data access for per-symbol aggregate rows.
type StatsRepository interface {
	Create(ctx context.Context, stats *domain.TokenStats) error
	Get(ctx context.Context, symbol string) (*domain.TokenStats, error)
	GetForUpdate(ctx context.Context, tx Transaction, symbol string) (*domain.TokenStats, error)
	Update(ctx context.Context, tx Transaction, stats *domain.TokenStats) error
}

// ShareRepository defines data access for the per-owner share registry.
// Listings return entries in registration order.
type ShareRepository interface {
	ListByOwner(ctx context.Context, owner string) ([]domain.ShareEntry, error)
	ListByOwnerForUpdate(ctx context.Context, tx Transaction, owner string) ([]domain.ShareEntry, error)
	Upsert(ctx context.Context, tx Transaction, entry *domain.ShareEntry) error
	Delete(ctx context.Context, tx Transaction, owner, beneficiary string) error
	DeleteAll(ctx context.Context, tx Transaction, owner string) error
}

// OutboxRepository defines data access for notification records.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Clock provides wall-clock seconds. The core only ever quantizes these
// into epoch days.
type Clock interface {
	NowSeconds() int64
}

// Authorizer decides whether the caller of the current operation holds
// authority for an account. HasAuthority is the soft variant used to pick
// the storage-cost payer between sender and recipient.
type Authorizer interface {
	RequireAuthorized(ctx context.Context, account string) error
	HasAuthority(ctx context.Context, account string) bool
}

// EligibilityChecker gates income accrual on an external policy predicate,
// for example an identity registry. The default implementation always passes.
type EligibilityChecker interface {
	IsEligible(ctx context.Context, account string) bool
}

// AlwaysEligible is the default EligibilityChecker.
type AlwaysEligible struct{}

func (AlwaysEligible) IsEligible(context.Context, string) bool { return true }

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
