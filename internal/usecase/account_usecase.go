package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle and read-side queries.
type AccountUseCase struct {
	txManager      TransactionManager
	accountRepo    AccountRepository
	entryRepo      EntryRepository
	locker         AccountLocker
	cache          BalanceCache
	idGen          domain.IDGenerator
	initialBalance int64
	logger         zerolog.Logger
	metrics        *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. initialBalance is the
// configured grant credited to every new account.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	locker AccountLocker,
	cache BalanceCache,
	idGen domain.IDGenerator,
	initialBalance int64,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:      txManager,
		accountRepo:    accountRepo,
		entryRepo:      entryRepo,
		locker:         locker,
		cache:          cache,
		idGen:          idGen,
		initialBalance: initialBalance,
		logger:         logger,
		metrics:        metrics,
	}
}

// InitAccount creates the coin account for a freshly registered user,
// credited with the configured initial grant. Creating twice for the same
// user fails with domain.ErrAccountExists.
func (uc *AccountUseCase) InitAccount(ctx context.Context, userID string) (*domain.Account, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	lock, err := uc.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	exists, err := uc.accountRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAccountExists
	}

	account, err := domain.NewAccount(uc.idGen, userID, uc.initialBalance)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}
	for _, entry := range account.PendingEntries() {
		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	account.ClearPending()

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("account_id", account.ID).
		Int64("initial_balance", uc.initialBalance).
		Msg("account initialized")

	return account, nil
}

// GetAccount retrieves the account header for a user.
func (uc *AccountUseCase) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return uc.accountRepo.GetByUserID(ctx, userID)
}

// GetBalance retrieves the current balance, served from cache when possible.
func (uc *AccountUseCase) GetBalance(ctx context.Context, userID string) (int64, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	if balance, ok, err := uc.cache.GetBalance(ctx, userID); err == nil && ok {
		if uc.metrics != nil {
			uc.metrics.BalanceCacheHits.Inc()
		}
		return balance, nil
	}
	if uc.metrics != nil {
		uc.metrics.BalanceCacheMisses.Inc()
	}

	account, err := uc.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := uc.cache.SetBalance(ctx, userID, account.Balance); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("balance cache write failed")
	}

	return account.Balance, nil
}

// GetHistoryInput represents input for a history query.
type GetHistoryInput struct {
	UserID string
	Limit  int
	Offset int
}

// GetHistory lists stream entries for a user, newest first. History is
// always re-queried from storage, never from an in-memory aggregate.
func (uc *AccountUseCase) GetHistory(ctx context.Context, input GetHistoryInput) ([]*domain.StreamEntry, error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, err
	}
	if input.Limit <= 0 {
		input.Limit = DefaultHistoryLimit
	}
	if input.Limit > MaxHistoryLimit {
		input.Limit = MaxHistoryLimit
	}

	// resolve the account first so deleted/unknown users report NotFound
	// instead of an empty page
	if _, err := uc.accountRepo.GetByUserID(ctx, input.UserID); err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByUser(ctx, input.UserID, input.Limit, input.Offset)
}

// GetStats summarizes total income, total expense and entry count.
func (uc *AccountUseCase) GetStats(ctx context.Context, userID string) (*domain.AccountStats, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if _, err := uc.accountRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.entryRepo.StatsByUser(ctx, userID)
}

// DeleteAccount soft-deletes the account, preserving the entry log for
// audit. The account disappears from all lookups but is never hard-deleted.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, userID string) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}

	lock, err := uc.locker.Acquire(ctx, userID)
	if err != nil {
		return err
	}
	defer lock.Release(ctx)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.SoftDelete(ctx, tx, userID, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("balance cache invalidation failed")
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}

	uc.logger.Info().Str("user_id", userID).Msg("account soft-deleted")
	return nil
}
