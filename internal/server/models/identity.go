package models

import "time"

// Identity is the persisted record backing one account inside a single
// identity store (customers, vendors, or admins). Email and phone are each
// unique within their own store; nothing at the storage layer prevents the
// same contact from appearing in two different stores.
type Identity struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Verified     bool
	CreatedAt    time.Time

	// Vendor profile fields; empty for other roles.
	BusinessName    string
	BusinessAddress string
	GSTNumber       string
	PANNumber       string

	// Admin profile fields; empty for other roles.
	Department  string
	Designation string
}

// MatchesContact reports whether the given contact identifier refers to
// this record by either channel.
func (i *Identity) MatchesContact(contact string) bool {
	if contact == "" {
		return false
	}
	return i.Email == contact || i.Phone == contact
}
