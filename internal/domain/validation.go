package domain

import (
	"fmt"
	"strings"
)

// Validation constants
const (
	MaxUserIDLength = 64
	MaxBizIDLength  = 64
	MaxRemarkLength = 255
	MaxAmount       = 1_000_000_000 // per-operation cap, in coins
)

// ValidateUserID validates a user identifier.
func ValidateUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id cannot be empty", ErrInvalidArgument)
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: user id exceeds %d characters", ErrInvalidArgument, MaxUserIDLength)
	}
	return nil
}

// ValidateAmount validates an operation amount.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: amount exceeds %d", ErrInvalidAmount, int64(MaxAmount))
	}
	return nil
}

// ValidateBizRef validates an idempotency key. An empty bizID is allowed (the
// operation is simply not idempotency-checked); a non-empty one requires a
// known biz type.
func ValidateBizRef(bizType BizType, bizID string) error {
	if !bizType.Valid() {
		return ErrInvalidBizType
	}
	if len(bizID) > MaxBizIDLength {
		return fmt.Errorf("%w: biz id exceeds %d characters", ErrInvalidArgument, MaxBizIDLength)
	}
	return nil
}

// ValidateRemark validates the free-text remark.
func ValidateRemark(remark string) error {
	if len(remark) > MaxRemarkLength {
		return fmt.Errorf("%w: remark exceeds %d characters", ErrInvalidArgument, MaxRemarkLength)
	}
	return nil
}
