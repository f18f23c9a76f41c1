package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

// MockTx is a no-op transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(context.Context) error   { t.Committed = true; return nil }
func (t *MockTx) Rollback(context.Context) error { t.RolledBack = true; return nil }

// MockTxManager hands out no-op transactions.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	Last      *MockTx
}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Last = &MockTx{}
	return m.Last, nil
}

// MockBalanceRepository is an in-memory BalanceRepository.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]*domain.Balance

	GetFunc          func(ctx context.Context, account, symbol string) (*domain.Balance, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, account, symbol string) (*domain.Balance, error)
	UpsertFunc       func(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error
	DeleteFunc       func(ctx context.Context, tx usecase.Transaction, account, symbol string) error
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{balances: make(map[string]*domain.Balance)}
}

func balanceKey(account, symbol string) string { return account + "/" + symbol }

// Seed stores a balance directly, bypassing any Func hooks.
func (m *MockBalanceRepository) Seed(b *domain.Balance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.balances[balanceKey(b.Account, b.Symbol)] = &cp
}

func (m *MockBalanceRepository) Get(ctx context.Context, account, symbol string) (*domain.Balance, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, account, symbol)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[balanceKey(account, symbol)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrBalanceNotFound
}

func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, account, symbol string) (*domain.Balance, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, account, symbol)
	}
	return m.Get(ctx, account, symbol)
}

func (m *MockBalanceRepository) Upsert(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *balance
	m.balances[balanceKey(balance.Account, balance.Symbol)] = &cp
	return nil
}

func (m *MockBalanceRepository) Delete(ctx context.Context, tx usecase.Transaction, account, symbol string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, account, symbol)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.balances, balanceKey(account, symbol))
	return nil
}

func (m *MockBalanceRepository) SumAmounts(ctx context.Context, symbol string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, b := range m.balances {
		if b.Symbol == symbol {
			total += b.Amount
		}
	}
	return total, nil
}

// MockStatsRepository is an in-memory StatsRepository.
type MockStatsRepository struct {
	mu    sync.RWMutex
	stats map[string]*domain.TokenStats

	UpdateFunc func(ctx context.Context, tx usecase.Transaction, stats *domain.TokenStats) error
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{stats: make(map[string]*domain.TokenStats)}
}

func (m *MockStatsRepository) Seed(s *domain.TokenStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.stats[s.Symbol] = &cp
}

func (m *MockStatsRepository) Create(ctx context.Context, stats *domain.TokenStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stats[stats.Symbol]; ok {
		return domain.ErrTokenExists
	}
	cp := *stats
	m.stats[stats.Symbol] = &cp
	return nil
}

func (m *MockStatsRepository) Get(ctx context.Context, symbol string) (*domain.TokenStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.stats[symbol]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrTokenNotFound
}

func (m *MockStatsRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, symbol string) (*domain.TokenStats, error) {
	return m.Get(ctx, symbol)
}

func (m *MockStatsRepository) Update(ctx context.Context, tx usecase.Transaction, stats *domain.TokenStats) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, stats)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *stats
	m.stats[stats.Symbol] = &cp
	return nil
}

// MockShareRepository is an in-memory ShareRepository preserving
// registration order.
type MockShareRepository struct {
	mu      sync.RWMutex
	entries map[string][]domain.ShareEntry // keyed by owner
}

func NewMockShareRepository() *MockShareRepository {
	return &MockShareRepository{entries: make(map[string][]domain.ShareEntry)}
}

func (m *MockShareRepository) ListByOwner(ctx context.Context, owner string) ([]domain.ShareEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ShareEntry, len(m.entries[owner]))
	copy(out, m.entries[owner])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *MockShareRepository) ListByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, owner string) ([]domain.ShareEntry, error) {
	return m.ListByOwner(ctx, owner)
}

func (m *MockShareRepository) Upsert(ctx context.Context, tx usecase.Transaction, entry *domain.ShareEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.entries[entry.Owner]
	for i := range list {
		if list[i].Beneficiary == entry.Beneficiary {
			list[i].Percent = entry.Percent
			return nil
		}
	}
	e := *entry
	e.Position = len(list)
	m.entries[entry.Owner] = append(list, e)
	return nil
}

func (m *MockShareRepository) Delete(ctx context.Context, tx usecase.Transaction, owner, beneficiary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.entries[owner]
	for i := range list {
		if list[i].Beneficiary == beneficiary {
			m.entries[owner] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockShareRepository) DeleteAll(ctx context.Context, tx usecase.Transaction, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, owner)
	return nil
}

// MockOutboxRepository records notification events in memory.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	Events []*domain.OutboxEvent
}

func NewMockOutboxRepository() *MockOutboxRepository { return &MockOutboxRepository{} }

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// ByType returns recorded events of one type, in creation order.
func (m *MockOutboxRepository) ByType(eventType string) []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.Events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// FixedClock serves a fixed epoch day.
type FixedClock struct {
	Seconds int64
}

// NewFixedClock positions the clock at noon of the given epoch day.
func NewFixedClock(day int64) *FixedClock {
	return &FixedClock{Seconds: day*domain.SecondsPerDay + domain.SecondsPerDay/2}
}

func (c *FixedClock) NowSeconds() int64 { return c.Seconds }

// AdvanceDays moves the clock forward by whole days.
func (c *FixedClock) AdvanceDays(days int64) { c.Seconds += days * domain.SecondsPerDay }

// MockAuthorizer authorizes a fixed set of accounts; an empty set allows all.
type MockAuthorizer struct {
	Allowed map[string]bool
}

func NewMockAuthorizer(accounts ...string) *MockAuthorizer {
	if len(accounts) == 0 {
		return &MockAuthorizer{}
	}
	allowed := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		allowed[a] = true
	}
	return &MockAuthorizer{Allowed: allowed}
}

func (m *MockAuthorizer) RequireAuthorized(ctx context.Context, account string) error {
	if m.Allowed == nil || m.Allowed[account] {
		return nil
	}
	return domain.ErrNotAuthorized
}

func (m *MockAuthorizer) HasAuthority(ctx context.Context, account string) bool {
	return m.Allowed == nil || m.Allowed[account]
}

// MockEligibility gates accounts by name; empty means everyone is eligible.
type MockEligibility struct {
	Ineligible map[string]bool
}

func (m *MockEligibility) IsEligible(ctx context.Context, account string) bool {
	return !m.Ineligible[account]
}

// MockIDGenerator yields sequential IDs.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewMockIDGenerator() *MockIDGenerator { return &MockIDGenerator{} }

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%04d", m.n)
}

// MockCache is a map-backed cache that ignores TTLs.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	Hits int
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}

	m.Hits++
	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
