package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists for user")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Entry errors
	ErrEntryNotFound     = errors.New("stream entry not found")
	ErrDuplicateBizEvent = errors.New("business event already processed")

	// Validation errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidBizType  = errors.New("invalid biz type")

	// Concurrency errors
	ErrLockTimeout = errors.New("account lock not acquired within deadline")
)
