package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxContactRepository struct {
	BaseRepository
}

// newPgxContactRepository creates a new repository for contact data.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepository {
	return &PgxContactRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ContactRepository = (*PgxContactRepository)(nil)

const contactColumns = `contact_id, name, contact_type, email, phone, address, tax_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanContact(row pgx.Row) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ContactID,
		&c.Name,
		&c.ContactType,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.TaxID,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveContact inserts a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (contact_id, name, contact_type, email, phone, address, tax_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		contact.ContactID,
		contact.Name,
		contact.ContactType,
		contact.Email,
		contact.Phone,
		contact.Address,
		contact.TaxID,
		contact.IsActive,
		contact.CreatedAt,
		contact.CreatedBy,
		contact.LastUpdatedAt,
		contact.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact %s: %w", contact.ContactID, err)
	}
	return nil
}

// FindContactByID retrieves a contact by its ID.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`
	contact, err := scanContact(r.Pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}
	return &contact, nil
}

// ListContacts retrieves a paginated list of active contacts, optionally
// filtered by type. The BOTH type satisfies both vendor and customer filters.
func (r *PgxContactRepository) ListContacts(ctx context.Context, contactType *domain.ContactType, limit int, offset int) ([]domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE is_active = TRUE
			AND ($1::text IS NULL OR contact_type = $1 OR contact_type = 'BOTH')
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, contactType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contact, error) {
		return scanContact(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact updates an existing contact.
func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, address = $5, tax_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE contact_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		contact.ContactID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Address,
		contact.TaxID,
		contact.LastUpdatedAt,
		contact.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", contact.ContactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateContact marks a contact as inactive.
func (r *PgxContactRepository) DeactivateContact(ctx context.Context, contactID string, userID string, now time.Time) error {
	query := `
		UPDATE contacts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE contact_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, contactID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate contact %s: %w", contactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
