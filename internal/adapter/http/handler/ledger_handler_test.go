package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/yucheng-ou/kaleido-coin/internal/adapter/http/dto"
	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

func okResult(userID string, balance int64) *usecase.OperationResult {
	return &usecase.OperationResult{
		AccountID: "acc-1",
		UserID:    userID,
		Balance:   balance,
		EntryID:   "e-1",
	}
}

func TestLedgerHandler_Deposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		Deposit(gomock.Any(), usecase.OperationInput{
			UserID:  "u-1",
			Amount:  100,
			BizType: domain.BizTypeInvite,
			BizID:   "new-user",
		}).
		Return(okResult("u-1", 200), nil)

	body, _ := json.Marshal(dto.OperationRequest{
		Amount:  100,
		BizType: string(domain.BizTypeInvite),
		BizID:   "new-user",
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/u-1/deposit", bytes.NewReader(body))
	rec := routeWithUserID(http.MethodPost, "/accounts/{userID}/deposit", NewLedgerHandler(svc).Deposit, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.OperationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != 200 || resp.EntryID != "e-1" || resp.Replayed {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLedgerHandler_Withdraw_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		Withdraw(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInsufficientBalance)

	body, _ := json.Marshal(dto.OperationRequest{Amount: 500, BizType: string(domain.BizTypeLocation), BizID: "loc-1"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/u-1/withdraw", bytes.NewReader(body))
	rec := routeWithUserID(http.MethodPost, "/accounts/{userID}/withdraw", NewLedgerHandler(svc).Withdraw, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestLedgerHandler_Withdraw_LockTimeoutSetsRetryAfter(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		Withdraw(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrLockTimeout)

	body, _ := json.Marshal(dto.OperationRequest{Amount: 50, BizType: string(domain.BizTypeOutfit), BizID: "o-1"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/u-1/withdraw", bytes.NewReader(body))
	rec := routeWithUserID(http.MethodPost, "/accounts/{userID}/withdraw", NewLedgerHandler(svc).Withdraw, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on lock timeout")
	}
}

func TestLedgerHandler_InviteReward_Replay(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	replayed := okResult("inviter", 200)
	replayed.Replayed = true
	svc.EXPECT().
		ProcessInviteReward(gomock.Any(), "inviter", "new-user").
		Return(replayed, nil)

	body, _ := json.Marshal(dto.InviteRewardRequest{InviterUserID: "inviter", NewUserID: "new-user"})
	req := httptest.NewRequest(http.MethodPost, "/rewards/invite", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewLedgerHandler(svc).InviteReward(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.OperationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Replayed {
		t.Fatalf("expected replayed flag set")
	}
}

func TestLedgerHandler_LocationFee(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		ProcessLocationFee(gomock.Any(), "u-1", "loc-9").
		Return(okResult("u-1", 50), nil)

	body, _ := json.Marshal(dto.LocationFeeRequest{UserID: "u-1", LocationID: "loc-9"})
	req := httptest.NewRequest(http.MethodPost, "/fees/location", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewLedgerHandler(svc).LocationFee(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLedgerHandler_OutfitFee_InvalidArgument(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		ProcessOutfitFee(gomock.Any(), "u-1", "").
		Return(nil, domain.ErrInvalidArgument)

	body, _ := json.Marshal(dto.OutfitFeeRequest{UserID: "u-1"})
	req := httptest.NewRequest(http.MethodPost, "/fees/outfit", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewLedgerHandler(svc).OutfitFee(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_GetEntryByBiz(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		GetEntryByBiz(gomock.Any(), domain.BizTypeOutfit, "o-1").
		Return(&domain.StreamEntry{ID: "e-7", BizType: domain.BizTypeOutfit, BizID: "o-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/entries/biz?biz_type=OUTFIT&biz_id=o-1", nil)
	rec := httptest.NewRecorder()

	NewLedgerHandler(svc).GetEntryByBiz(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "e-7" {
		t.Fatalf("expected entry e-7, got %s", resp.ID)
	}
}

func TestLedgerHandler_GetEntryByBiz_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockLedgerService(ctrl)
	svc.EXPECT().
		GetEntryByBiz(gomock.Any(), domain.BizTypeInvite, "nobody").
		Return(nil, domain.ErrEntryNotFound)

	req := httptest.NewRequest(http.MethodGet, "/entries/biz?biz_type=INVITE&biz_id=nobody", nil)
	rec := httptest.NewRecorder()

	NewLedgerHandler(svc).GetEntryByBiz(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
