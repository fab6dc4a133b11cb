package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the interface for contact data access. All contact
// operations are scoped to an owner; a contact is never visible to anyone
// but the account that created it.
type Repository interface {
	// CreateContact stores a new contact
	CreateContact(ctx context.Context, c *Contact) (*Contact, error)

	// GetContact returns one of the owner's visible contacts
	GetContact(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error)

	// ListContacts returns a page of the owner's visible contacts, newest
	// first, optionally filtered by a search term on names and phone
	ListContacts(ctx context.Context, params ListParams) (*ContactPage, error)

	// UpdateContact replaces the editable fields of a contact
	UpdateContact(ctx context.Context, c *Contact) (*Contact, error)

	// SetPictureKey updates the stored picture reference of a contact
	SetPictureKey(ctx context.Context, ownerID, id uuid.UUID, key string) error

	// DeleteContact removes one of the owner's contacts
	DeleteContact(ctx context.Context, ownerID, id uuid.UUID) error

	// CreateCategory stores a new category
	CreateCategory(ctx context.Context, name string) (*Category, error)

	// GetCategory returns a category by ID
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)

	// ListCategories returns all categories ordered by name
	ListCategories(ctx context.Context) ([]Category, error)
}

const contactColumns = `id, owner_id, first_name, last_name, phone, email, description, category_id, picture_key, show, created_at`

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL contact repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanContact(row pgx.Row) (*Contact, error) {
	var c Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&c.Description, &c.CategoryID, &c.PictureKey, &c.Show, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}
	return &c, nil
}

// CreateContact stores a new contact
func (r *PostgresRepository) CreateContact(ctx context.Context, c *Contact) (*Contact, error) {
	query := `
		INSERT INTO contacts (owner_id, first_name, last_name, phone, email, description, category_id, show, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query,
		c.OwnerID, c.FirstName, c.LastName, c.Phone, c.Email, c.Description,
		c.CategoryID, c.Show, time.Now().UTC())

	created, err := scanContact(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return created, nil
}

// GetContact returns one of the owner's visible contacts
func (r *PostgresRepository) GetContact(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1 AND owner_id = $2 AND show = TRUE`

	return scanContact(r.pool.QueryRow(ctx, query, id, ownerID))
}

// ListContacts returns a page of the owner's visible contacts
func (r *PostgresRepository) ListContacts(ctx context.Context, params ListParams) (*ContactPage, error) {
	where := `owner_id = $1 AND show = TRUE`
	args := []any{params.OwnerID}

	if params.Search != "" {
		where += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone LIKE $2)`
		args = append(args, "%"+strings.TrimSpace(params.Search)+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM contacts WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT %d OFFSET %d`, contactColumns, where, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	return &ContactPage{Contacts: contacts, Total: total}, nil
}

// UpdateContact replaces the editable fields of a contact
func (r *PostgresRepository) UpdateContact(ctx context.Context, c *Contact) (*Contact, error) {
	query := `
		UPDATE contacts
		SET first_name = $3, last_name = $4, phone = $5, email = $6, description = $7, category_id = $8
		WHERE id = $1 AND owner_id = $2 AND show = TRUE
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query,
		c.ID, c.OwnerID, c.FirstName, c.LastName, c.Phone, c.Email, c.Description, c.CategoryID)

	updated, err := scanContact(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SetPictureKey updates the stored picture reference of a contact
func (r *PostgresRepository) SetPictureKey(ctx context.Context, ownerID, id uuid.UUID, key string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contacts SET picture_key = $3
		WHERE id = $1 AND owner_id = $2 AND show = TRUE`, id, ownerID, key)
	if err != nil {
		return fmt.Errorf("failed to set picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// DeleteContact removes one of the owner's contacts
func (r *PostgresRepository) DeleteContact(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// CreateCategory stores a new category
func (r *PostgresRepository) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var cat Category
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&cat.ID, &cat.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &cat, nil
}

// GetCategory returns a category by ID
func (r *PostgresRepository) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var cat Category
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &cat, nil
}

// ListCategories returns all categories ordered by name
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}
