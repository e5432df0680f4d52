package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

// pgErrUniqueViolation is the PostgreSQL code for unique constraint violations.
const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository over the coin_account table.
type AccountRepository struct {
	pool  *pgxpool.Pool
	idGen domain.IDGenerator
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool, idGen domain.IDGenerator) *AccountRepository {
	return &AccountRepository{pool: pool, idGen: idGen}
}

// Create inserts a new account. A user that already owns a live account
// trips the user_id unique index and maps to domain.ErrAccountExists.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO coin_account (id, user_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := pgxTx.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAccountExists
	}

	return err
}

// GetByUserID retrieves a live account by user ID.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return r.scanAccount(r.pool.QueryRow(ctx, accountSelectQuery, userID))
}

// GetByUserIDForUpdate retrieves a live account by user ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.scanAccount(pgxTx.QueryRow(ctx, accountSelectQuery+" FOR UPDATE", userID))
}

const accountSelectQuery = `
		SELECT id, user_id, balance, created_at, updated_at
		FROM coin_account
		WHERE user_id = $1 AND deleted_at IS NULL`

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		id, userID           string
		balance              int64
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &userID, &balance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return domain.RehydrateAccount(r.idGen, id, userID, balance, createdAt, updatedAt), nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE coin_account
		SET balance = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := pgxTx.Exec(ctx, query, id, balance, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// ExistsByUserID reports whether a live account exists for the user.
func (r *AccountRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM coin_account
			WHERE user_id = $1 AND deleted_at IS NULL
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID).Scan(&exists)

	return exists, err
}

// SoftDelete marks an account as deleted without removing its stream history.
func (r *AccountRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, userID string, deletedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE coin_account
		SET deleted_at = $2, updated_at = $2
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	tag, err := pgxTx.Exec(ctx, query, userID, deletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
