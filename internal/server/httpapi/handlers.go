// Package httpapi exposes the auth subsystem over REST. The JSON surface
// mirrors the mobile clients' expectations: camelCase fields, a token plus
// a user object on every successful authentication.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/models"
	"github.com/trademart/marketplace/internal/server/services"
)

// loginRejectedMessage is the single message used for every login failure
// a caller is not supposed to tell apart: unknown contact, role mismatch,
// and a rejected admin access code all read the same from outside.
const loginRejectedMessage = "Invalid email/password"

// Handlers holds the HTTP endpoints of the auth API.
type Handlers struct {
	service *services.AuthService
	logger  logging.Logger
}

func NewHandlers(service *services.AuthService, logger logging.Logger) *Handlers {
	return &Handlers{service: service, logger: logger.With("module", "httpapi")}
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// internalError hides the failure detail from the client and logs it.
func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`

	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	GSTNumber       string `json:"gstNumber"`
	PANNumber       string `json:"panNumber"`

	Department  string `json:"department"`
	Designation string `json:"designation"`
}

// Register handles account creation for a fixed role; each registration
// route binds its own role.
func (h *Handlers) Register(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !h.decode(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		result, err := h.service.Register(r.Context(), services.RegisterRequest{
			Role:            role,
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			Password:        req.Password,
			BusinessName:    req.BusinessName,
			BusinessAddress: req.BusinessAddress,
			GSTNumber:       req.GSTNumber,
			PANNumber:       req.PANNumber,
			Department:      req.Department,
			Designation:     req.Designation,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyRegistered) {
				writeError(w, http.StatusConflict, "An account with this email or phone already exists")
				return
			}
			h.internalError(w, r, err)
			return
		}

		status := http.StatusOK
		if result.Created {
			status = http.StatusCreated
		}
		writeJSON(w, status, messageResponse{Message: result.Message, OtpSent: true})
	}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	AccessCode string `json:"accessCode"`
}

// Login runs the composite flow: password first, OTP challenge on a
// mismatch.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	expectedRole, ok := parseExpectedRole(w, req.Role)
	if !ok {
		return
	}

	result, err := h.service.Login(r.Context(), services.LoginRequest{
		Contact:      req.Email,
		Password:     req.Password,
		ExpectedRole: expectedRole,
		AccessCode:   req.AccessCode,
	})
	if err != nil {
		h.renderLoginError(w, r, err)
		return
	}

	if result.OtpSent {
		writeJSON(w, http.StatusOK, messageResponse{Message: result.Message, OtpSent: true})
		return
	}
	writeJSON(w, http.StatusOK, jwtResponse{
		Token:   result.Session.Token,
		Message: result.Message,
		User:    userFromPrincipal(result.Session.Principal),
	})
}

// renderLoginError maps login failures onto wire responses. The distinct
// sentinels collapse into one indistinguishable 401 so responses cannot be
// used to probe which accounts exist or which portal they belong to.
func (h *Handlers) renderLoginError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorRoleMismatch),
		errors.Is(err, common.ErrorAdminGate):
		writeError(w, http.StatusUnauthorized, loginRejectedMessage)
	default:
		h.internalError(w, r, err)
	}
}

// parseExpectedRole validates an optional role string, writing a 400 on
// an unknown value. The empty string means "any role".
func parseExpectedRole(w http.ResponseWriter, s string) (models.Role, bool) {
	if s == "" {
		return "", true
	}
	role, err := models.ParseRole(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown role")
		return "", false
	}
	return role, true
}

type contactRequest struct {
	Contact string `json:"contact"`
}

type otpLoginRequest struct {
	Contact    string `json:"contact"`
	Role       string `json:"role"`
	AccessCode string `json:"accessCode"`
}

// OtpLogin starts a passwordless login. Role pinning and the admin access
// code apply here exactly as on the password endpoint.
func (h *Handlers) OtpLogin(w http.ResponseWriter, r *http.Request) {
	var req otpLoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	expectedRole, ok := parseExpectedRole(w, req.Role)
	if !ok {
		return
	}

	message, err := h.service.OtpLogin(r.Context(), services.LoginRequest{
		Contact:      req.Contact,
		ExpectedRole: expectedRole,
		AccessCode:   req.AccessCode,
	})
	if err != nil {
		h.renderLoginError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: message, OtpSent: true})
}

type verifyOtpRequest struct {
	Contact string `json:"contact"`
	Otp     string `json:"otp"`
}

// VerifyOtp completes an OTP challenge and returns a session.
func (h *Handlers) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.VerifyOtp(r.Context(), req.Contact, req.Otp)
	if err != nil {
		if errors.Is(err, common.ErrorOtpInvalidOrExpired) {
			writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, loginRejectedMessage)
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jwtResponse{
		Token:   session.Token,
		Message: session.Message,
		User:    userFromPrincipal(session.Principal),
	})
}

// ForgotPassword starts password recovery. Unlike login, an unknown
// contact is reported so the caller can correct a typo.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !h.decode(w, r, &req) {
		return
	}

	message, err := h.service.ForgotPassword(r.Context(), req.Contact)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "No account found for this contact")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: message, OtpSent: true})
}

type verifyForgotPasswordRequest struct {
	Contact     string `json:"contact"`
	Otp         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// VerifyForgotPasswordOtp finishes password recovery and logs the caller
// straight in.
func (h *Handlers) VerifyForgotPasswordOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.VerifyForgotPasswordOtp(r.Context(), req.Contact, req.Otp, req.NewPassword)
	if err != nil {
		if errors.Is(err, common.ErrorOtpInvalidOrExpired) {
			writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "No account found for this contact")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jwtResponse{
		Token:   session.Token,
		Message: session.Message,
		User:    userFromPrincipal(session.Principal),
	})
}

// CheckRole reports which store owns a contact identifier.
func (h *Handlers) CheckRole(w http.ResponseWriter, r *http.Request) {
	contact := chi.URLParam(r, "contact")

	role, err := h.service.CheckContactRole(r.Context(), contact)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "No account found for this contact")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roleResponse{Role: role.String()})
}

// Me returns the profile of the authenticated principal.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	principal, err := h.service.Profile(r.Context(), claims.Subject, role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "account no longer exists")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userFromPrincipal(principal))
}

// Healthz is the liveness probe.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
