package dto

import (
	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

// InitAccountRequest represents a request to initialize a coin account.
type InitAccountRequest struct {
	UserID string `json:"user_id"`
}

// OperationRequest represents a deposit or withdraw request.
type OperationRequest struct {
	Amount  int64  `json:"amount"`
	BizType string `json:"biz_type"`
	BizID   string `json:"biz_id,omitempty"`
	Remark  string `json:"remark,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OperationRequest) ToUseCaseInput(userID string) usecase.OperationInput {
	return usecase.OperationInput{
		UserID:  userID,
		Amount:  r.Amount,
		BizType: domain.BizType(r.BizType),
		BizID:   r.BizID,
		Remark:  r.Remark,
	}
}

// InviteRewardRequest represents an invite reward payout request.
type InviteRewardRequest struct {
	InviterUserID string `json:"inviter_user_id"`
	NewUserID     string `json:"new_user_id"`
}

// LocationFeeRequest represents a storage location creation fee request.
type LocationFeeRequest struct {
	UserID     string `json:"user_id"`
	LocationID string `json:"location_id"`
}

// OutfitFeeRequest represents an outfit creation fee request.
type OutfitFeeRequest struct {
	UserID   string `json:"user_id"`
	OutfitID string `json:"outfit_id"`
}
