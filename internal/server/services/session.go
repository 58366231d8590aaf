package services

import "github.com/trademart/marketplace/internal/server/models"

// Session is the result of a successful authentication: a signed token
// plus the principal it was minted for.
type Session struct {
	Token     string
	Message   string
	Principal *models.Principal
}

// LoginResult is the outcome of the composite login flow. Exactly one of
// Session or OtpSent is set: either the password authenticated directly,
// or a one-time code was dispatched and the client must call VerifyOtp.
type LoginResult struct {
	Session *Session
	OtpSent bool
	Message string
}
