package usecase

import (
	"context"
	"time"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
)

// AccountRepository defines data access for account headers. Loads never
// hydrate the entry history: the header (id, userId, balance) is the whole
// working set.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	SoftDelete(ctx context.Context, tx Transaction, userID string, deletedAt time.Time) error
}

// EntryRepository defines data access for the append-only entry log.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.StreamEntry) error
	// ExistsProcessedTx backs the idempotency guard; it runs inside the
	// command's transaction so the check and the mutation are observed
	// atomically relative to other commands on the same account.
	ExistsProcessedTx(ctx context.Context, tx Transaction, bizType domain.BizType, bizID string) (bool, error)
	ExistsProcessed(ctx context.Context, bizType domain.BizType, bizID string) (bool, error)
	GetByBiz(ctx context.Context, bizType domain.BizType, bizID string) (*domain.StreamEntry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.StreamEntry, error)
	StatsByUser(ctx context.Context, userID string) (*domain.AccountStats, error)
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

// AccountLock is a held per-account lock.
type AccountLock interface {
	Release(ctx context.Context) error
}

// AccountLocker serializes commands per account across service instances.
// Acquire blocks up to a configured wait window and fails with
// domain.ErrLockTimeout when the window elapses.
type AccountLocker interface {
	Acquire(ctx context.Context, userID string) (AccountLock, error)
}

// BalanceCache caches balance reads. All methods are best-effort: callers
// treat errors as cache misses, never as command failures.
type BalanceCache interface {
	GetBalance(ctx context.Context, userID string) (int64, bool, error)
	SetBalance(ctx context.Context, userID string, balance int64) error
	Invalidate(ctx context.Context, userID string) error
}

// Retrier re-runs an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
