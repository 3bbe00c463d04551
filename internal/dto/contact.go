package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a contact.
type CreateContactRequest struct {
	Name        string             `json:"name" binding:"required"`
	ContactType domain.ContactType `json:"contactType" binding:"required,oneof=CUSTOMER VENDOR BOTH"`
	Email       string             `json:"email" binding:"omitempty,email"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	TaxID       string             `json:"taxID"`
}

// UpdateContactRequest defines the fields a contact allows updating.
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	TaxID   *string `json:"taxID"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID   string             `json:"contactID"`
	Name        string             `json:"name"`
	ContactType domain.ContactType `json:"contactType"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	TaxID       string             `json:"taxID"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToContactResponse converts a domain.Contact to its response DTO.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:   c.ContactID,
		Name:        c.Name,
		ContactType: c.ContactType,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		TaxID:       c.TaxID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// ToListContactResponse converts a slice of contacts to response DTOs.
func ToListContactResponse(contacts []domain.Contact) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i := range contacts {
		res[i] = ToContactResponse(&contacts[i])
	}
	return res
}
