// Package services holds the business logic of the auth subsystem: the
// identity resolver, the OTP ledger, and the orchestrator tying them
// together with token issuance and notification dispatch.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/auth"
	"github.com/trademart/marketplace/internal/server/metrics"
	"github.com/trademart/marketplace/internal/server/models"
	"github.com/trademart/marketplace/internal/server/notify"
)

// RegisterRequest carries everything needed to create an account. Profile
// fields beyond the common set apply only to the matching role and are
// ignored otherwise.
type RegisterRequest struct {
	Role     models.Role
	Name     string
	Email    string
	Phone    string
	Password string

	// Vendor profile.
	BusinessName    string
	BusinessAddress string
	GSTNumber       string
	PANNumber       string

	// Admin profile.
	Department  string
	Designation string
}

// RegisterResult reports what registration did: either a fresh account was
// created or an existing unverified one got a new code. In both cases a
// code is on its way to every contact channel the account has.
type RegisterResult struct {
	Created bool
	Message string
}

// LoginRequest carries the credentials of a direct password login.
// ExpectedRole, when set, pins the login to one portal; AccessCode is the
// extra shared secret required for admin accounts.
type LoginRequest struct {
	Contact      string
	Password     string
	ExpectedRole models.Role
	AccessCode   string
}

// AuthService orchestrates registration and every login flow over the
// resolver, the OTP ledger, the token signer, and the notification
// dispatcher.
type AuthService struct {
	resolver   *Resolver
	ledger     *OtpLedger
	dispatcher notify.Dispatcher
	metrics    *metrics.Metrics
	logger     logging.Logger

	secretKey       []byte
	tokenValidity   time.Duration
	adminAccessCode string
}

func NewAuthService(
	resolver *Resolver,
	ledger *OtpLedger,
	dispatcher notify.Dispatcher,
	m *metrics.Metrics,
	logger logging.Logger,
	secretKey []byte,
	tokenValidity time.Duration,
	adminAccessCode string,
) *AuthService {
	return &AuthService{
		resolver:        resolver,
		ledger:          ledger,
		dispatcher:      dispatcher,
		metrics:         m,
		logger:          logger.With("module", "auth"),
		secretKey:       secretKey,
		tokenValidity:   tokenValidity,
		adminAccessCode: adminAccessCode,
	}
}

// Register creates an account in the store owned by the requested role and
// sends a verification code to every contact channel.
//
// Both channels are checked across all three stores first: an already
// verified match anywhere rejects the request, while an unverified match
// just gets a fresh code so the earlier registration can be completed.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	for _, contact := range []string{req.Email, req.Phone} {
		if contact == "" {
			continue
		}
		existing, err := s.resolver.Resolve(ctx, contact)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		if existing.Verified {
			return nil, common.ErrorAlreadyRegistered
		}
		if err := s.sendOtp(ctx, existing.Email, existing.Phone); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "re-issued code for unverified account", "email", existing.Email)
		return &RegisterResult{Created: false, Message: "Account exists but is not verified. A new OTP has been sent."}, nil
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	identity := &models.Identity{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,

		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		GSTNumber:       req.GSTNumber,
		PANNumber:       req.PANNumber,
		Department:      req.Department,
		Designation:     req.Designation,
	}

	if _, err := s.resolver.StoreFor(req.Role).Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	s.metrics.Registrations.Inc()
	s.logger.Info(ctx, "account created", "role", req.Role, "email", req.Email)

	if err := s.sendOtp(ctx, req.Email, req.Phone); err != nil {
		return nil, err
	}
	return &RegisterResult{Created: true, Message: "Registration successful. An OTP has been sent for verification."}, nil
}

// sendOtp issues one code under every non-empty contact and dispatches it.
// Delivery failures are logged but never fail the calling flow; the code
// is already in the ledger and can be re-requested.
func (s *AuthService) sendOtp(ctx context.Context, contacts ...string) error {
	code, err := s.ledger.Issue(ctx, contacts...)
	if err != nil {
		return err
	}
	s.metrics.OtpIssued.Inc()

	for _, contact := range contacts {
		if contact == "" {
			continue
		}
		if err := s.dispatcher.SendOtp(ctx, contact, code); err != nil {
			s.logger.Error(ctx, "otp delivery failed", "destination", contact, "error", err)
		}
	}
	return nil
}

// resolveGated resolves the contact and applies the role and admin access
// gates shared by every login entry point, password or OTP alike.
//
// The failure modes stay distinct internally so callers can choose their
// own fallback: common.ErrorNotFound for an unknown contact,
// common.ErrorRoleMismatch for a portal/role conflict, and
// common.ErrorAdminGate for a missing or wrong admin access code.
func (s *AuthService) resolveGated(ctx context.Context, req LoginRequest) (*models.Principal, error) {
	principal, err := s.resolver.Resolve(ctx, req.Contact)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.metrics.Logins.WithLabelValues(metrics.OutcomeFailure).Inc()
		}
		return nil, err
	}

	if req.ExpectedRole != "" && principal.Role != req.ExpectedRole {
		s.metrics.Logins.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, common.ErrorRoleMismatch
	}

	if principal.Role == models.RoleAdmin && req.AccessCode != s.adminAccessCode {
		s.metrics.Logins.WithLabelValues(metrics.OutcomeFailure).Inc()
		s.logger.Warn(ctx, "admin access code rejected", "email", principal.Email)
		return nil, common.ErrorAdminGate
	}

	return principal, nil
}

// DirectLogin authenticates a password against the resolved account. On
// top of the shared gates it adds common.ErrorInvalidCredentials for a
// wrong password.
func (s *AuthService) DirectLogin(ctx context.Context, req LoginRequest) (*Session, error) {
	principal, err := s.resolveGated(ctx, req)
	if err != nil {
		return nil, err
	}

	if !PasswordMatches(principal.PasswordHash, req.Password) {
		s.metrics.Logins.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, common.ErrorInvalidCredentials
	}

	session, err := s.newSession(principal, "Login successful")
	if err != nil {
		return nil, err
	}
	s.metrics.Logins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return session, nil
}

// Login is the composite flow behind the main login endpoint. A wrong
// password on an existing account degrades to an OTP challenge instead of
// a rejection; every other failure stays a failure.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	session, err := s.DirectLogin(ctx, req)
	if err == nil {
		return &LoginResult{Session: session, Message: session.Message}, nil
	}
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		return nil, err
	}

	principal, rerr := s.resolver.Resolve(ctx, req.Contact)
	if rerr != nil {
		return nil, rerr
	}
	if err := s.sendOtp(ctx, principal.Email, principal.Phone); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "password mismatch, otp challenge issued", "contact", req.Contact)
	return &LoginResult{OtpSent: true, Message: "Password did not match. An OTP has been sent to your registered contacts."}, nil
}

// OtpLogin starts a passwordless login by dispatching a code to the
// account's channels. No password is checked; possession of the channel is
// the credential. The role and admin gates are the same ones DirectLogin
// applies, so the OTP path cannot be used to slip past them. The Password
// field of the request is ignored.
func (s *AuthService) OtpLogin(ctx context.Context, req LoginRequest) (string, error) {
	principal, err := s.resolveGated(ctx, req)
	if err != nil {
		return "", err
	}
	if err := s.sendOtp(ctx, principal.Email, principal.Phone); err != nil {
		return "", err
	}
	return "An OTP has been sent to your registered contacts.", nil
}

// VerifyOtp completes an OTP challenge: on a valid code the account is
// marked verified, the code is consumed, and a session is minted.
func (s *AuthService) VerifyOtp(ctx context.Context, contact string, code string) (*Session, error) {
	ok, err := s.ledger.Verify(ctx, contact, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.OtpVerifications.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, common.ErrorOtpInvalidOrExpired
	}
	s.metrics.OtpVerifications.WithLabelValues(metrics.OutcomeSuccess).Inc()

	principal, err := s.resolver.Resolve(ctx, contact)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.SetVerified(ctx, principal.Email, true); err != nil {
		return nil, err
	}
	principal.Verified = true

	if err := s.ledger.Invalidate(ctx, contact); err != nil {
		return nil, err
	}

	session, err := s.newSession(principal, "OTP verified successfully")
	if err != nil {
		return nil, err
	}
	s.metrics.Logins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return session, nil
}

// ForgotPassword starts password recovery for an existing account. Unlike
// login, an unknown contact is reported to the caller and no code is
// issued for it.
func (s *AuthService) ForgotPassword(ctx context.Context, contact string) (string, error) {
	principal, err := s.resolver.Resolve(ctx, contact)
	if err != nil {
		return "", err
	}

	code, err := s.ledger.Issue(ctx, principal.Email, principal.Phone)
	if err != nil {
		return "", err
	}
	s.metrics.OtpIssued.Inc()

	for _, destination := range []string{principal.Email, principal.Phone} {
		if destination == "" {
			continue
		}
		if err := s.dispatcher.SendForgotPasswordNotice(ctx, destination, code); err != nil {
			s.logger.Error(ctx, "recovery code delivery failed", "destination", destination, "error", err)
		}
	}
	return "A password recovery OTP has been sent to your registered contacts.", nil
}

// VerifyForgotPasswordOtp finishes password recovery. On a valid code the
// new password (when given) replaces the stored credential, the account is
// marked verified, the code is consumed, and the caller is logged straight
// in.
func (s *AuthService) VerifyForgotPasswordOtp(ctx context.Context, contact, code, newPassword string) (*Session, error) {
	ok, err := s.ledger.Verify(ctx, contact, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.OtpVerifications.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, common.ErrorOtpInvalidOrExpired
	}
	s.metrics.OtpVerifications.WithLabelValues(metrics.OutcomeSuccess).Inc()

	principal, err := s.resolver.Resolve(ctx, contact)
	if err != nil {
		return nil, err
	}

	if newPassword != "" {
		hash, err := HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		if err := s.resolver.SetPassword(ctx, principal.Email, hash); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "password reset", "email", principal.Email)
	}

	if err := s.resolver.SetVerified(ctx, principal.Email, true); err != nil {
		return nil, err
	}
	principal.Verified = true

	if err := s.ledger.Invalidate(ctx, contact); err != nil {
		return nil, err
	}

	session, err := s.newSession(principal, "Password recovery successful")
	if err != nil {
		return nil, err
	}
	s.metrics.Logins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return session, nil
}

// CheckContactRole reports which store owns the contact, following the
// usual precedence order.
func (s *AuthService) CheckContactRole(ctx context.Context, contact string) (models.Role, error) {
	principal, err := s.resolver.Resolve(ctx, contact)
	if err != nil {
		return "", err
	}
	return principal.Role, nil
}

// Profile returns the current account for authenticated requests. The role
// from the token picks the store directly, skipping the precedence scan.
func (s *AuthService) Profile(ctx context.Context, email string, role models.Role) (*models.Principal, error) {
	identity, err := s.resolver.StoreFor(role).FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return models.PrincipalFromIdentity(identity), nil
}

func (s *AuthService) newSession(principal *models.Principal, message string) (*Session, error) {
	token, err := auth.GenerateToken(principal.Email, principal.Role.String(), principal.ID, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &Session{Token: token, Message: message, Principal: principal}, nil
}
