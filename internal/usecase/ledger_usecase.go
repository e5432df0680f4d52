package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/metrics"
)

// BizAmounts holds the configured amounts for business-event commands.
type BizAmounts struct {
	InviteReward int64
	LocationCost int64
	OutfitCost   int64
}

// Validate checks the configured amounts.
func (a BizAmounts) Validate() error {
	if a.InviteReward <= 0 {
		return fmt.Errorf("%w: invite reward must be positive", domain.ErrInvalidArgument)
	}
	if a.LocationCost <= 0 {
		return fmt.Errorf("%w: location cost must be positive", domain.ErrInvalidArgument)
	}
	if a.OutfitCost <= 0 {
		return fmt.Errorf("%w: outfit cost must be positive", domain.ErrInvalidArgument)
	}
	return nil
}

// LedgerUseCase orchestrates balance-changing commands: per-account
// serialization, idempotency guard, aggregate mutation and atomic persist.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	locker      AccountLocker
	retrier     Retrier
	cache       BalanceCache
	amounts     BizAmounts
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	locker AccountLocker,
	retrier Retrier,
	cache BalanceCache,
	amounts BizAmounts,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		locker:      locker,
		retrier:     retrier,
		cache:       cache,
		amounts:     amounts,
		logger:      logger,
		metrics:     metrics,
	}
}

// OperationInput represents a deposit or withdraw command.
type OperationInput struct {
	UserID  string
	Amount  int64
	BizType domain.BizType
	BizID   string // optional; non-empty makes the command idempotent
	Remark  string
}

// OperationResult is the outcome of a balance-changing command. Replayed is
// set when the command's idempotency key was already processed: the entry id
// is the previously recorded one and no state was changed.
type OperationResult struct {
	AccountID string
	UserID    string
	Balance   int64
	EntryID   string
	Replayed  bool
}

// Deposit credits an account.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input OperationInput) (*OperationResult, error) {
	return uc.execute(ctx, input, false)
}

// Withdraw debits an account. Fails with domain.ErrInsufficientBalance when
// the balance does not cover the amount; balance and history are left
// untouched in that case.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input OperationInput) (*OperationResult, error) {
	return uc.execute(ctx, input, true)
}

// ProcessInviteReward credits the inviter with the configured reward. The
// new user's id is the idempotency key, so one registration pays out at most
// once.
func (uc *LedgerUseCase) ProcessInviteReward(ctx context.Context, inviterUserID, newUserID string) (*OperationResult, error) {
	if err := domain.ValidateUserID(newUserID); err != nil {
		return nil, err
	}
	return uc.Deposit(ctx, OperationInput{
		UserID:  inviterUserID,
		Amount:  uc.amounts.InviteReward,
		BizType: domain.BizTypeInvite,
		BizID:   newUserID,
		Remark:  "invite reward for new user registration",
	})
}

// ProcessLocationFee charges the configured fee for creating a storage
// location, idempotent on the location id.
func (uc *LedgerUseCase) ProcessLocationFee(ctx context.Context, userID, locationID string) (*OperationResult, error) {
	if locationID == "" {
		return nil, fmt.Errorf("%w: location id cannot be empty", domain.ErrInvalidArgument)
	}
	return uc.Withdraw(ctx, OperationInput{
		UserID:  userID,
		Amount:  uc.amounts.LocationCost,
		BizType: domain.BizTypeLocation,
		BizID:   locationID,
		Remark:  "storage location creation fee",
	})
}

// ProcessOutfitFee charges the configured fee for creating an outfit,
// idempotent on the outfit id.
func (uc *LedgerUseCase) ProcessOutfitFee(ctx context.Context, userID, outfitID string) (*OperationResult, error) {
	if outfitID == "" {
		return nil, fmt.Errorf("%w: outfit id cannot be empty", domain.ErrInvalidArgument)
	}
	return uc.Withdraw(ctx, OperationInput{
		UserID:  userID,
		Amount:  uc.amounts.OutfitCost,
		BizType: domain.BizTypeOutfit,
		BizID:   outfitID,
		Remark:  "outfit creation fee",
	})
}

// HasProcessed reports whether a business event was already applied.
func (uc *LedgerUseCase) HasProcessed(ctx context.Context, bizType domain.BizType, bizID string) (bool, error) {
	if err := domain.ValidateBizRef(bizType, bizID); err != nil {
		return false, err
	}
	if bizID == "" {
		return false, fmt.Errorf("%w: biz id cannot be empty", domain.ErrInvalidArgument)
	}
	return uc.entryRepo.ExistsProcessed(ctx, bizType, bizID)
}

// GetEntryByBiz retrieves the entry recorded for a business event.
func (uc *LedgerUseCase) GetEntryByBiz(ctx context.Context, bizType domain.BizType, bizID string) (*domain.StreamEntry, error) {
	if err := domain.ValidateBizRef(bizType, bizID); err != nil {
		return nil, err
	}
	if bizID == "" {
		return nil, fmt.Errorf("%w: biz id cannot be empty", domain.ErrInvalidArgument)
	}
	return uc.entryRepo.GetByBiz(ctx, bizType, bizID)
}

// execute runs the full command: validate, acquire the per-account lock,
// then load, guard, mutate and persist in one transaction. The transaction
// is retried on transient storage conflicts; business failures are final.
func (uc *LedgerUseCase) execute(ctx context.Context, input OperationInput, withdraw bool) (*OperationResult, error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateBizRef(input.BizType, input.BizID); err != nil {
		return nil, err
	}
	if err := domain.ValidateRemark(input.Remark); err != nil {
		return nil, err
	}

	operation := "deposit"
	if withdraw {
		operation = "withdraw"
	}

	lock, err := uc.locker.Acquire(ctx, input.UserID)
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrLockTimeout) {
			uc.metrics.LockTimeouts.Inc()
		}
		return nil, err
	}
	defer lock.Release(ctx)

	var result *OperationResult
	err = uc.retrier.Retry(ctx, func() error {
		var opErr error
		result, opErr = uc.applyOnce(ctx, input, withdraw)
		return opErr
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.LedgerOperations.WithLabelValues(operation, "error").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		if result.Replayed {
			uc.metrics.ReplayedEvents.WithLabelValues(string(input.BizType)).Inc()
		} else {
			uc.metrics.LedgerOperations.WithLabelValues(operation, "success").Inc()
			uc.metrics.OperationAmount.WithLabelValues(operation).Observe(float64(input.Amount))
		}
	}

	if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("balance cache invalidation failed")
	}

	uc.logger.Info().
		Str("user_id", input.UserID).
		Str("biz_type", string(input.BizType)).
		Str("biz_id", input.BizID).
		Int64("amount", input.Amount).
		Int64("balance", result.Balance).
		Bool("withdraw", withdraw).
		Bool("replayed", result.Replayed).
		Msg("ledger command applied")

	return result, nil
}

func (uc *LedgerUseCase) applyOnce(ctx context.Context, input OperationInput, withdraw bool) (*OperationResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// the row lock taken here serializes the guard check and the mutation
	// against every other command on this account
	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.BizID != "" {
		processed, err := uc.entryRepo.ExistsProcessedTx(ctx, tx, input.BizType, input.BizID)
		if err != nil {
			return nil, err
		}
		if processed {
			return uc.replayResult(ctx, account, input)
		}
	}

	priorBalance := account.Balance

	var entry *domain.StreamEntry
	if withdraw {
		entry, err = account.Withdraw(input.Amount, input.BizType, input.BizID, input.Remark)
	} else {
		entry, err = account.Deposit(input.Amount, input.BizType, input.BizID, input.Remark)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		// a concurrent command on a different account can slip the same
		// biz key past the guard; the unique index is the backstop
		if errors.Is(err, domain.ErrDuplicateBizEvent) {
			account.Balance = priorBalance
			account.ClearPending()
			return uc.replayResult(ctx, account, input)
		}
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	account.ClearPending()

	return &OperationResult{
		AccountID: account.ID,
		UserID:    account.UserID,
		Balance:   account.Balance,
		EntryID:   entry.ID,
	}, nil
}

// replayResult resolves a duplicate business event to the previously
// recorded outcome. The open transaction is abandoned (rolled back by the
// caller's defer); nothing was mutated.
func (uc *LedgerUseCase) replayResult(ctx context.Context, account *domain.Account, input OperationInput) (*OperationResult, error) {
	prior, err := uc.entryRepo.GetByBiz(ctx, input.BizType, input.BizID)
	if err != nil {
		return nil, err
	}

	uc.logger.Warn().
		Str("user_id", input.UserID).
		Str("biz_type", string(input.BizType)).
		Str("biz_id", input.BizID).
		Msg("duplicate business event, returning recorded outcome")

	return &OperationResult{
		AccountID: account.ID,
		UserID:    account.UserID,
		Balance:   account.Balance,
		EntryID:   prior.ID,
		Replayed:  true,
	}, nil
}
