package dto

import (
	"time"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// BalanceResponse represents a balance read.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// EntryResponse represents a stream entry in API responses.
type EntryResponse struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	UserID       string    `json:"user_id"`
	Direction    string    `json:"direction"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	BizType      string    `json:"biz_type"`
	BizID        string    `json:"biz_id,omitempty"`
	Remark       string    `json:"remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.StreamEntry) *EntryResponse {
	return &EntryResponse{
		ID:           e.ID,
		AccountID:    e.AccountID,
		UserID:       e.UserID,
		Direction:    string(e.Direction),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		BizType:      string(e.BizType),
		BizID:        e.BizID,
		Remark:       e.Remark,
		CreatedAt:    e.CreatedAt,
	}
}

// EntriesFromDomain converts a slice of domain entries.
func EntriesFromDomain(entries []*domain.StreamEntry) []*EntryResponse {
	out := make([]*EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryFromDomain(e))
	}
	return out
}

// ListEntriesResponse represents a page of stream entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// OperationResponse represents the outcome of a balance-changing command.
type OperationResponse struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
	EntryID   string `json:"entry_id"`
	Replayed  bool   `json:"replayed"`
}

// OperationFromResult converts a use case result to response.
func OperationFromResult(r *usecase.OperationResult) *OperationResponse {
	return &OperationResponse{
		AccountID: r.AccountID,
		UserID:    r.UserID,
		Balance:   r.Balance,
		EntryID:   r.EntryID,
		Replayed:  r.Replayed,
	}
}

// StatsResponse represents account lifetime statistics.
type StatsResponse struct {
	UserID       string `json:"user_id"`
	TotalIncome  int64  `json:"total_income"`
	TotalExpense int64  `json:"total_expense"`
	EntryCount   int64  `json:"entry_count"`
}

// StatsFromDomain converts domain stats to response.
func StatsFromDomain(s *domain.AccountStats) *StatsResponse {
	return &StatsResponse{
		UserID:       s.UserID,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		EntryCount:   s.EntryCount,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
