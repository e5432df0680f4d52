// Package mocks provides hand-rolled test doubles for the usecase
// interfaces. Every mock has an in-memory default behavior; individual calls
// can be overridden through the exported func fields.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

// SeqIDGenerator implements domain.IDGenerator with a deterministic counter.
type SeqIDGenerator struct {
	n atomic.Int64
}

func NewSeqIDGenerator() *SeqIDGenerator {
	return &SeqIDGenerator{}
}

func (g *SeqIDGenerator) Generate() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

type accountRow struct {
	id        string
	userID    string
	balance   int64
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// MockAccountRepository is an in-memory implementation of
// usecase.AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	byUserID map[string]*accountRow
	idGen    domain.IDGenerator

	CreateFunc               func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByUserIDFunc          func(ctx context.Context, userID string) (*domain.Account, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error
	ExistsByUserIDFunc       func(ctx context.Context, userID string) (bool, error)
	SoftDeleteFunc           func(ctx context.Context, tx usecase.Transaction, userID string, deletedAt time.Time) error
}

func NewMockAccountRepository(idGen domain.IDGenerator) *MockAccountRepository {
	return &MockAccountRepository{
		byUserID: make(map[string]*accountRow),
		idGen:    idGen,
	}
}

// Seed inserts an account header directly, bypassing the aggregate.
func (m *MockAccountRepository) Seed(id, userID string, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	m.byUserID[userID] = &accountRow{id: id, userID: userID, balance: balance, createdAt: now, updatedAt: now}
}

// Balance returns the stored balance for assertions.
func (m *MockAccountRepository) Balance(userID string) (int64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.byUserID[userID]
	if !ok || row.deletedAt != nil {
		return 0, false
	}
	return row.balance, true
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.byUserID[account.UserID]; ok && row.deletedAt == nil {
		return domain.ErrAccountExists
	}
	m.byUserID[account.UserID] = &accountRow{
		id:        account.ID,
		userID:    account.UserID,
		balance:   account.Balance,
		createdAt: account.CreatedAt,
		updatedAt: account.UpdatedAt,
	}
	return nil
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return m.get(userID)
}

func (m *MockAccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.get(userID)
}

func (m *MockAccountRepository) get(userID string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.byUserID[userID]
	if !ok || row.deletedAt != nil {
		return nil, domain.ErrAccountNotFound
	}
	return domain.RehydrateAccount(m.idGen, row.id, row.userID, row.balance, row.createdAt, row.updatedAt), nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.byUserID {
		if row.id == id {
			row.balance = balance
			row.updatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	if m.ExistsByUserIDFunc != nil {
		return m.ExistsByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.byUserID[userID]
	return ok && row.deletedAt == nil, nil
}

func (m *MockAccountRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, userID string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, userID, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.byUserID[userID]
	if !ok || row.deletedAt != nil {
		return domain.ErrAccountNotFound
	}
	row.deletedAt = &deletedAt
	return nil
}

// MockEntryRepository is an in-memory implementation of
// usecase.EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.StreamEntry

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, entry *domain.StreamEntry) error
	ExistsProcessedTxFunc func(ctx context.Context, tx usecase.Transaction, bizType domain.BizType, bizID string) (bool, error)
	ExistsProcessedFunc   func(ctx context.Context, bizType domain.BizType, bizID string) (bool, error)
	GetByBizFunc          func(ctx context.Context, bizType domain.BizType, bizID string) (*domain.StreamEntry, error)
	ListByUserFunc        func(ctx context.Context, userID string, limit, offset int) ([]*domain.StreamEntry, error)
	StatsByUserFunc       func(ctx context.Context, userID string) (*domain.AccountStats, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// Entries returns a copy of everything written, for assertions.
func (m *MockEntryRepository) Entries() []*domain.StreamEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.StreamEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.StreamEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.BizID != "" {
		for _, e := range m.entries {
			if e.BizType == entry.BizType && e.BizID == entry.BizID {
				return domain.ErrDuplicateBizEvent
			}
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ExistsProcessedTx(ctx context.Context, tx usecase.Transaction, bizType domain.BizType, bizID string) (bool, error) {
	if m.ExistsProcessedTxFunc != nil {
		return m.ExistsProcessedTxFunc(ctx, tx, bizType, bizID)
	}
	return m.exists(bizType, bizID), nil
}

func (m *MockEntryRepository) ExistsProcessed(ctx context.Context, bizType domain.BizType, bizID string) (bool, error) {
	if m.ExistsProcessedFunc != nil {
		return m.ExistsProcessedFunc(ctx, bizType, bizID)
	}
	return m.exists(bizType, bizID), nil
}

func (m *MockEntryRepository) exists(bizType domain.BizType, bizID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bizID == "" {
		return false
	}
	for _, e := range m.entries {
		if e.BizType == bizType && e.BizID == bizID {
			return true
		}
	}
	return false
}

func (m *MockEntryRepository) GetByBiz(ctx context.Context, bizType domain.BizType, bizID string) (*domain.StreamEntry, error) {
	if m.GetByBizFunc != nil {
		return m.GetByBizFunc(ctx, bizType, bizID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.BizType == bizType && e.BizID == bizID {
			return e, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.StreamEntry, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.StreamEntry
	for i := len(m.entries) - 1; i >= 0; i-- { // newest first
		if m.entries[i].UserID == userID {
			matched = append(matched, m.entries[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockEntryRepository) StatsByUser(ctx context.Context, userID string) (*domain.AccountStats, error) {
	if m.StatsByUserFunc != nil {
		return m.StatsByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.AccountStats{UserID: userID}
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		stats.EntryCount++
		if e.IsIncome() {
			stats.TotalIncome += e.Amount
		} else {
			stats.TotalExpense += e.Amount
		}
	}
	return stats, nil
}

// MockTransaction is a no-op usecase.Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  atomic.Bool
	RolledBack atomic.Bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed.Store(true)
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack.Store(true)
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockAccountLocker serializes per key with real mutexes, so concurrency
// tests exercise the same mutual exclusion the Redis lock provides.
type MockAccountLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	AcquireFunc func(ctx context.Context, userID string) (usecase.AccountLock, error)
}

func NewMockAccountLocker() *MockAccountLocker {
	return &MockAccountLocker{locks: make(map[string]*sync.Mutex)}
}

func (m *MockAccountLocker) Acquire(ctx context.Context, userID string) (usecase.AccountLock, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, userID)
	}
	m.mu.Lock()
	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return &mockAccountLock{mu: lock}, nil
}

type mockAccountLock struct {
	mu   *sync.Mutex
	once sync.Once
}

func (l *mockAccountLock) Release(ctx context.Context) error {
	l.once.Do(l.mu.Unlock)
	return nil
}

// MockBalanceCache is an in-memory usecase.BalanceCache.
type MockBalanceCache struct {
	mu       sync.RWMutex
	balances map[string]int64

	GetBalanceFunc func(ctx context.Context, userID string) (int64, bool, error)
	SetBalanceFunc func(ctx context.Context, userID string, balance int64) error
	InvalidateFunc func(ctx context.Context, userID string) error
}

func NewMockBalanceCache() *MockBalanceCache {
	return &MockBalanceCache{balances: make(map[string]int64)}
}

func (m *MockBalanceCache) GetBalance(ctx context.Context, userID string) (int64, bool, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	balance, ok := m.balances[userID]
	return balance, ok, nil
}

func (m *MockBalanceCache) SetBalance(ctx context.Context, userID string, balance int64) error {
	if m.SetBalanceFunc != nil {
		return m.SetBalanceFunc(ctx, userID, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] = balance
	return nil
}

func (m *MockBalanceCache) Invalidate(ctx context.Context, userID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.balances, userID)
	return nil
}

// MockRetrier runs the operation once, no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
