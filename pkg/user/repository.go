package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the interface for user account persistence
type Repository interface {
	// CreateUserWithProfile inserts the user and its profile atomically.
	// Uniqueness of username and email is enforced here, at commit time.
	CreateUserWithProfile(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PostgresRepository handles database operations for user accounts
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new user repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, active, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.Active,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUserWithProfile inserts the user and its profile in one transaction.
// Unique-constraint violations map to ErrUsernameTaken / ErrEmailTaken.
func (r *PostgresRepository) CreateUserWithProfile(ctx context.Context, params CreateUserParams) (*User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (username, email, first_name, last_name, password_hash, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING ` + userColumns

	u, err := scanUser(tx.QueryRow(ctx, query,
		params.Username,
		params.Email,
		params.FirstName,
		params.LastName,
		params.PasswordHash,
	))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	profileQuery := `
		INSERT INTO profiles (user_id, public_id)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, profileQuery, u.ID, uuid.New()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

// GetByEmail retrieves a user by email
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetProfileByUserID retrieves the profile owned by a user
func (r *PostgresRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `
		SELECT id, user_id, public_id, created_at
		FROM profiles
		WHERE user_id = $1
	`

	var p Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.PublicID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &p, nil
}

// UpdateUser applies profile-edit fields. Nil fields keep the stored values.
func (r *PostgresRepository) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    email = COALESCE($4, email),
		    username = COALESCE($5, username),
		    password_hash = COALESCE($6, password_hash)
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query,
		id,
		params.FirstName,
		params.LastName,
		params.Email,
		params.Username,
		params.PasswordHash,
	))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return u, nil
}

// UsernameExists reports whether the username belongs to an account
func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

// EmailExists reports whether the email belongs to an account
func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// mapUniqueViolation converts Postgres unique-constraint errors to the
// package sentinels so callers see a uniqueness conflict, not a driver error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameTaken
		case "users_email_key":
			return ErrEmailTaken
		}
	}
	return err
}
