package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
)

type contactService struct {
	contactRepo portsrepo.ContactRepository
}

// NewContactService creates the contact service.
func NewContactService(contactRepo portsrepo.ContactRepository) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

// CreateContact persists a new contact.
func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	contact := domain.Contact{
		ContactID:   uuid.NewString(),
		Name:        req.Name,
		ContactType: req.ContactType,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		TaxID:       req.TaxID,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		logger.Error("Failed to save contact", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	logger.Info("Contact created", slog.String("contact_id", contact.ContactID), slog.String("contact_type", string(contact.ContactType)))
	return &contact, nil
}

// GetContactByID retrieves a contact.
func (s *contactService) GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}
	return contact, nil
}

// ListContacts retrieves a paginated list of contacts, optionally filtered by type.
func (s *contactService) ListContacts(ctx context.Context, contactType *domain.ContactType, limit int, offset int) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContacts(ctx, contactType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact updates a contact's editable fields. The contact type is fixed
// at creation so existing documents keep a valid counterparty.
func (s *contactService) UpdateContact(ctx context.Context, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Address != nil {
		contact.Address = *req.Address
	}
	if req.TaxID != nil {
		contact.TaxID = *req.TaxID
	}

	contact.LastUpdatedAt = time.Now().UTC()
	contact.LastUpdatedBy = userID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		logger.Error("Failed to update contact", slog.String("contact_id", contactID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update contact %s: %w", contactID, err)
	}

	logger.Info("Contact updated", slog.String("contact_id", contactID))
	return contact, nil
}

// DeactivateContact marks a contact as inactive.
func (s *contactService) DeactivateContact(ctx context.Context, contactID string, userID string) error {
	if err := s.contactRepo.DeactivateContact(ctx, contactID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate contact %s: %w", contactID, err)
	}
	return nil
}
