package domain

// User is an authenticated actor. Everything they create carries their ID in
// the audit fields.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"` // unique
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
