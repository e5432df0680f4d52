package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository over the coin_stream table.
// The stream is append only; entries are never updated or deleted.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends a stream entry. An entry with an already recorded
// (biz_type, biz_id) pair trips the partial unique index and maps to
// domain.ErrDuplicateBizEvent.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.StreamEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO coin_stream (id, account_id, user_id, direction, amount, balance_after, biz_type, biz_id, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.UserID,
		string(entry.Direction),
		entry.Amount,
		entry.BalanceAfter,
		string(entry.BizType),
		nullableString(entry.BizID),
		entry.Remark,
		entry.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateBizEvent
	}

	return err
}

// ExistsProcessedTx reports inside a transaction whether a business event
// was already recorded.
func (r *EntryRepository) ExistsProcessedTx(ctx context.Context, tx usecase.Transaction, bizType domain.BizType, bizID string) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var exists bool
	err := pgxTx.QueryRow(ctx, existsProcessedQuery, string(bizType), bizID).Scan(&exists)

	return exists, err
}

// ExistsProcessed reports whether a business event was already recorded.
func (r *EntryRepository) ExistsProcessed(ctx context.Context, bizType domain.BizType, bizID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, existsProcessedQuery, string(bizType), bizID).Scan(&exists)

	return exists, err
}

const existsProcessedQuery = `
		SELECT EXISTS (
			SELECT 1 FROM coin_stream
			WHERE biz_type = $1 AND biz_id = $2
		)`

// GetByBiz retrieves the entry recorded for a business event.
func (r *EntryRepository) GetByBiz(ctx context.Context, bizType domain.BizType, bizID string) (*domain.StreamEntry, error) {
	query := entrySelectColumns + `
		FROM coin_stream
		WHERE biz_type = $1 AND biz_id = $2
	`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, string(bizType), bizID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// ListByUser retrieves a user's stream entries, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.StreamEntry, error) {
	query := entrySelectColumns + `
		FROM coin_stream
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.StreamEntry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// StatsByUser aggregates a user's lifetime income and expense totals.
func (r *EntryRepository) StatsByUser(ctx context.Context, userID string) (*domain.AccountStats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE direction = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE direction = 'expense'), 0),
			COUNT(*)
		FROM coin_stream
		WHERE user_id = $1
	`

	stats := &domain.AccountStats{UserID: userID}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&stats.TotalIncome, &stats.TotalExpense, &stats.EntryCount)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

const entrySelectColumns = `
		SELECT id, account_id, user_id, direction, amount, balance_after, biz_type, biz_id, remark, created_at`

func scanEntry(row pgx.Row) (*domain.StreamEntry, error) {
	var (
		entry     domain.StreamEntry
		direction string
		bizType   string
		bizID     sql.NullString
	)

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.UserID,
		&direction,
		&entry.Amount,
		&entry.BalanceAfter,
		&bizType,
		&bizID,
		&entry.Remark,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Direction = domain.Direction(direction)
	entry.BizType = domain.BizType(bizType)
	entry.BizID = bizID.String

	return &entry, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}

	return s
}
