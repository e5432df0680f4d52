package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yucheng-ou/kaleido-coin/internal/adapter/http/dto"
	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

//go:generate mockgen -source=account_handler.go -destination=mock_account_service_test.go -package=handler

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	InitAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetBalance(ctx context.Context, userID string) (int64, error)
	GetHistory(ctx context.Context, input usecase.GetHistoryInput) ([]*domain.StreamEntry, error)
	GetStats(ctx context.Context, userID string) (*domain.AccountStats, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create initializes the coin account for a user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.InitAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.InitAccount(r.Context(), req.UserID)
	if err != nil {
		writeDomainError(w, err, "failed to initialize account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves the account for a user.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	account, err := h.accountUC.GetAccount(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to get account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetBalance retrieves the current balance for a user.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	balance, err := h.accountUC.GetBalance(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// ListEntries lists a user's stream entries, newest first.
func (h *AccountHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := parseIntQuery(r, "limit", usecase.DefaultHistoryLimit)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.accountUC.GetHistory(r.Context(), usecase.GetHistoryInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Limit:   limit,
		Offset:  offset,
	})
}

// GetStats retrieves lifetime income and expense totals for a user.
func (h *AccountHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := h.accountUC.GetStats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to get stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(stats))
}

// Delete soft-deletes a user's account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.accountUC.DeleteAccount(r.Context(), userID); err != nil {
		writeDomainError(w, err, "failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
