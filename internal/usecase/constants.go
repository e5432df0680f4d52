package usecase

const (
	// DefaultHistoryLimit is applied when a history query passes no limit.
	DefaultHistoryLimit = 20

	// MaxHistoryLimit caps a single history page.
	MaxHistoryLimit = 100
)
