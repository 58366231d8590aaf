package models

import "time"

// OtpCode is one live verification code keyed by a contact identifier
// (email address or phone number). Records are deleted and rewritten, never
// updated in place; at most one live record per contact is intended.
type OtpCode struct {
	Contact   string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is no longer acceptable at the given
// instant. A code is unusable from its exact expiry time onwards.
func (o *OtpCode) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
