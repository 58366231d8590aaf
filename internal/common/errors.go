// Package common defines shared constants and sentinel errors used across
// the marketplace backend. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login flow errors. ErrorInvalidCredentials means the contact resolved
	// but the password did not match; it must be rendered with the same
	// external message as an unknown contact so responses cannot be used to
	// probe which accounts exist.
	ErrorInvalidCredentials = errors.New("invalid email/password")
	ErrorRoleMismatch       = errors.New("account role does not match login portal")
	ErrorAdminGate          = errors.New("admin access code rejected")

	// Registration errors.
	ErrorAlreadyRegistered = errors.New("account already exists and is verified")

	// OTP lifecycle errors. Wrong code, missing code, and expired code are
	// deliberately indistinguishable to the caller.
	ErrorOtpInvalidOrExpired = errors.New("invalid or expired otp")

	// Token errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
