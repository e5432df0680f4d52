package domain

import (
	"time"
)

// IDGenerator produces unique identifiers for accounts and stream entries.
type IDGenerator interface {
	Generate() string
}

// Account is the balance-holding aggregate. It owns the rule for how stream
// entries are produced and validated against the current balance.
//
// Entries created by Deposit/Withdraw accumulate in an uncommitted pending
// buffer until the repository persists them; the buffer is never re-read as
// authoritative history. A loaded account carries only its header (id,
// userId, balance); history stays in storage.
type Account struct {
	ID        string
	UserID    string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	pending []*StreamEntry
	idGen   IDGenerator
}

// NewAccount creates an account for a user. When initialBalance is positive
// an INITIAL entry is synthesized so the entry log sums to the balance from
// day one.
func NewAccount(idGen IDGenerator, userID string, initialBalance int64) (*Account, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if initialBalance < 0 {
		return nil, ErrInvalidArgument
	}

	now := time.Now().UTC()
	account := &Account{
		ID:        idGen.Generate(),
		UserID:    userID,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
		idGen:     idGen,
	}

	if initialBalance > 0 {
		account.pending = append(account.pending, &StreamEntry{
			ID:           idGen.Generate(),
			AccountID:    account.ID,
			UserID:       userID,
			Direction:    DirectionIncome,
			Amount:       initialBalance,
			BalanceAfter: initialBalance,
			BizType:      BizTypeInitial,
			Remark:       "account initialization",
			CreatedAt:    now,
		})
	}

	return account, nil
}

// RehydrateAccount rebuilds an aggregate from a persisted header. The pending
// buffer starts empty: historical entries are never loaded into memory.
func RehydrateAccount(idGen IDGenerator, id, userID string, balance int64, createdAt, updatedAt time.Time) *Account {
	return &Account{
		ID:        id,
		UserID:    userID,
		Balance:   balance,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		idGen:     idGen,
	}
}

// Deposit increases the balance and records an income entry.
func (a *Account) Deposit(amount int64, bizType BizType, bizID, remark string) (*StreamEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !bizType.Valid() {
		return nil, ErrInvalidBizType
	}

	a.Balance += amount
	entry := a.newEntry(DirectionIncome, amount, bizType, bizID, remark)
	a.pending = append(a.pending, entry)

	return entry, nil
}

// Withdraw decreases the balance and records an expense entry. The operation
// is all-or-nothing: on any failure the balance and pending buffer are left
// untouched.
func (a *Account) Withdraw(amount int64, bizType BizType, bizID, remark string) (*StreamEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !bizType.Valid() {
		return nil, ErrInvalidBizType
	}
	if !a.HasSufficientBalance(amount) {
		return nil, ErrInsufficientBalance
	}

	a.Balance -= amount
	entry := a.newEntry(DirectionExpense, amount, bizType, bizID, remark)
	a.pending = append(a.pending, entry)

	return entry, nil
}

// HasSufficientBalance reports whether the balance covers amount. No side
// effects.
func (a *Account) HasSufficientBalance(amount int64) bool {
	if amount <= 0 {
		return false
	}
	return a.Balance >= amount
}

// FindEntryByBiz looks up a pending entry by its idempotency key. Only the
// uncommitted buffer is searched: this detects duplicate calls within one
// command execution, not prior processing (that is the persistent guard's
// job).
func (a *Account) FindEntryByBiz(bizType BizType, bizID string) *StreamEntry {
	if bizID == "" {
		return nil
	}
	for _, e := range a.pending {
		if e.BizType == bizType && e.BizID == bizID {
			return e
		}
	}
	return nil
}

// HasProcessedBiz reports whether a pending entry exists for the given
// idempotency key.
func (a *Account) HasProcessedBiz(bizType BizType, bizID string) bool {
	return a.FindEntryByBiz(bizType, bizID) != nil
}

// RecentEntries returns up to limit of the most recently added pending
// entries, oldest first.
func (a *Account) RecentEntries(limit int) []*StreamEntry {
	if limit <= 0 {
		return nil
	}
	start := len(a.pending) - limit
	if start < 0 {
		start = 0
	}
	out := make([]*StreamEntry, len(a.pending)-start)
	copy(out, a.pending[start:])
	return out
}

// PendingEntries returns the uncommitted entries awaiting persistence.
func (a *Account) PendingEntries() []*StreamEntry {
	return a.pending
}

// ClearPending drops the uncommitted buffer. Called only after a successful
// atomic persist so already-written entries are never re-inserted.
func (a *Account) ClearPending() {
	a.pending = nil
}

func (a *Account) newEntry(direction Direction, amount int64, bizType BizType, bizID, remark string) *StreamEntry {
	return &StreamEntry{
		ID:           a.idGen.Generate(),
		AccountID:    a.ID,
		UserID:       a.UserID,
		Direction:    direction,
		Amount:       amount,
		BalanceAfter: a.Balance,
		BizType:      bizType,
		BizID:        bizID,
		Remark:       remark,
		CreatedAt:    time.Now().UTC(),
	}
}
