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

//go:generate mockgen -source=ledger_handler.go -destination=mock_ledger_service_test.go -package=handler

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, input usecase.OperationInput) (*usecase.OperationResult, error)
	Withdraw(ctx context.Context, input usecase.OperationInput) (*usecase.OperationResult, error)
	ProcessInviteReward(ctx context.Context, inviterUserID, newUserID string) (*usecase.OperationResult, error)
	ProcessLocationFee(ctx context.Context, userID, locationID string) (*usecase.OperationResult, error)
	ProcessOutfitFee(ctx context.Context, userID, outfitID string) (*usecase.OperationResult, error)
	GetEntryByBiz(ctx context.Context, bizType domain.BizType, bizID string) (*domain.StreamEntry, error)
}

// LedgerHandler handles balance-changing HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit credits a user's account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.ledgerUC.Deposit, "failed to deposit")
}

// Withdraw debits a user's account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.ledgerUC.Withdraw, "failed to withdraw")
}

func (h *LedgerHandler) operate(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, usecase.OperationInput) (*usecase.OperationResult, error),
	message string,
) {
	userID := chi.URLParam(r, "userID")

	var req dto.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := op(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, err, message)
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromResult(result))
}

// InviteReward pays the configured reward to an inviter, at most once per
// registered user.
func (h *LedgerHandler) InviteReward(w http.ResponseWriter, r *http.Request) {
	var req dto.InviteRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.ProcessInviteReward(r.Context(), req.InviterUserID, req.NewUserID)
	if err != nil {
		writeDomainError(w, err, "failed to pay invite reward")
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromResult(result))
}

// LocationFee charges the storage location creation fee, at most once per
// location.
func (h *LedgerHandler) LocationFee(w http.ResponseWriter, r *http.Request) {
	var req dto.LocationFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.ProcessLocationFee(r.Context(), req.UserID, req.LocationID)
	if err != nil {
		writeDomainError(w, err, "failed to charge location fee")
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromResult(result))
}

// OutfitFee charges the outfit creation fee, at most once per outfit.
func (h *LedgerHandler) OutfitFee(w http.ResponseWriter, r *http.Request) {
	var req dto.OutfitFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.ProcessOutfitFee(r.Context(), req.UserID, req.OutfitID)
	if err != nil {
		writeDomainError(w, err, "failed to charge outfit fee")
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromResult(result))
}

// GetEntryByBiz looks up the entry recorded for a business event.
func (h *LedgerHandler) GetEntryByBiz(w http.ResponseWriter, r *http.Request) {
	bizType := r.URL.Query().Get("biz_type")
	bizID := r.URL.Query().Get("biz_id")

	entry, err := h.ledgerUC.GetEntryByBiz(r.Context(), domain.BizType(bizType), bizID)
	if err != nil {
		writeDomainError(w, err, "failed to get entry")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
