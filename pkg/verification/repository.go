package verification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Code represents a one-time email verification code
type Code struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// Repository defines the interface for verification code persistence.
// Codes are never deleted; used codes are retained as history.
type Repository interface {
	CreateCode(ctx context.Context, email, code string, expiresAt time.Time) (*Code, error)
	GetCurrentCodeByEmail(ctx context.Context, email string) (*Code, error)
	MarkCodeAsUsed(ctx context.Context, codeID uuid.UUID) error
	InvalidateCodesByEmail(ctx context.Context, email string) error
	CountRecentCodesByEmail(ctx context.Context, email string, since time.Time) (int64, error)
}

// PostgresRepository handles database operations for verification codes
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new verification code repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateCode inserts a new verification code
func (r *PostgresRepository) CreateCode(ctx context.Context, email, code string, expiresAt time.Time) (*Code, error) {
	query := `
		INSERT INTO verification_codes (email, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, email, code, created_at, expires_at, used
	`

	var c Code
	err := r.db.QueryRow(ctx, query, email, code, expiresAt).Scan(
		&c.ID,
		&c.Email,
		&c.Code,
		&c.CreatedAt,
		&c.ExpiresAt,
		&c.Used,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// GetCurrentCodeByEmail retrieves the most recently created unused code for an email
func (r *PostgresRepository) GetCurrentCodeByEmail(ctx context.Context, email string) (*Code, error) {
	query := `
		SELECT id, email, code, created_at, expires_at, used
		FROM verification_codes
		WHERE email = $1
		AND used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var c Code
	err := r.db.QueryRow(ctx, query, email).Scan(
		&c.ID,
		&c.Email,
		&c.Code,
		&c.CreatedAt,
		&c.ExpiresAt,
		&c.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	return &c, nil
}

// MarkCodeAsUsed marks a code as used
func (r *PostgresRepository) MarkCodeAsUsed(ctx context.Context, codeID uuid.UUID) error {
	query := `
		UPDATE verification_codes
		SET used = TRUE
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, codeID)
	return err
}

// InvalidateCodesByEmail marks all unused codes for an email as used
func (r *PostgresRepository) InvalidateCodesByEmail(ctx context.Context, email string) error {
	query := `
		UPDATE verification_codes
		SET used = TRUE
		WHERE email = $1
		AND used = FALSE
	`

	_, err := r.db.Exec(ctx, query, email)
	return err
}

// CountRecentCodesByEmail counts codes created for an email since a given time
func (r *PostgresRepository) CountRecentCodesByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM verification_codes
		WHERE email = $1
		AND created_at > $2
	`

	var count int64
	err := r.db.QueryRow(ctx, query, email, since).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
