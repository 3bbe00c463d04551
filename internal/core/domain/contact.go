package domain

// ContactType distinguishes vendors from customers. A contact may be both.
type ContactType string

const (
	Customer       ContactType = "CUSTOMER"
	Vendor         ContactType = "VENDOR"
	CustomerVendor ContactType = "BOTH"
)

// Contact is a counterparty on documents and payments.
type Contact struct {
	ContactID   string      `json:"contactID"`
	Name        string      `json:"name"`
	ContactType ContactType `json:"contactType"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	TaxID       string      `json:"taxID"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// IsVendor reports whether the contact can appear on purchase documents.
func (c Contact) IsVendor() bool {
	return c.ContactType == Vendor || c.ContactType == CustomerVendor
}

// IsCustomer reports whether the contact can appear on sales documents.
func (c Contact) IsCustomer() bool {
	return c.ContactType == Customer || c.ContactType == CustomerVendor
}
