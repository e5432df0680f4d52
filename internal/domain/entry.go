package domain

import "time"

// Direction indicates whether a stream entry adds to or subtracts from the
// account balance. The stored amount is always positive; the sign lives here.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// BizType categorizes why a balance change occurred.
type BizType string

const (
	BizTypeInitial  BizType = "INITIAL"
	BizTypeInvite   BizType = "INVITE"
	BizTypeLocation BizType = "LOCATION"
	BizTypeOutfit   BizType = "OUTFIT"
)

var knownBizTypes = map[BizType]bool{
	BizTypeInitial:  true,
	BizTypeInvite:   true,
	BizTypeLocation: true,
	BizTypeOutfit:   true,
}

// Valid reports whether the biz type is one of the known categories.
func (b BizType) Valid() bool {
	return knownBizTypes[b]
}

// StreamEntry is an immutable record of a single balance change. Entries are
// created exactly once through the Account aggregate and never mutated or
// deleted afterwards.
type StreamEntry struct {
	ID           string
	AccountID    string
	UserID       string
	Direction    Direction
	Amount       int64 // always > 0
	BalanceAfter int64
	BizType      BizType
	BizID        string // empty when the change has no originating business event
	Remark       string
	CreatedAt    time.Time
}

// IsIncome reports whether the entry increased the balance.
func (e *StreamEntry) IsIncome() bool {
	return e.Direction == DirectionIncome
}

// IsExpense reports whether the entry decreased the balance.
func (e *StreamEntry) IsExpense() bool {
	return e.Direction == DirectionExpense
}

// SignedAmount returns the amount with the sign implied by the direction.
func (e *StreamEntry) SignedAmount() int64 {
	if e.Direction == DirectionExpense {
		return -e.Amount
	}
	return e.Amount
}

// AccountStats summarizes the entry log of one account.
type AccountStats struct {
	UserID       string
	TotalIncome  int64
	TotalExpense int64
	EntryCount   int64
}
