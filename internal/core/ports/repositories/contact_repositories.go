package repositories

import (
	"context"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
)

// ContactRepository defines the persistence operations for contacts.
type ContactRepository interface {
	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// FindContactByID retrieves a specific contact.
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)

	// ListContacts retrieves a paginated list of active contacts, optionally
	// filtered by type.
	ListContacts(ctx context.Context, contactType *domain.ContactType, limit int, offset int) ([]domain.Contact, error)

	// UpdateContact updates an existing contact.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeactivateContact marks a contact as inactive.
	DeactivateContact(ctx context.Context, contactID string, userID string, now time.Time) error
}
