package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/trademart/marketplace/internal/server/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
	OtpSent bool   `json:"otpSent,omitempty"`
}

type userPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type jwtResponse struct {
	Token   string      `json:"token"`
	Message string      `json:"message"`
	User    userPayload `json:"user"`
}

type roleResponse struct {
	Role string `json:"role"`
}

func userFromPrincipal(p *models.Principal) userPayload {
	return userPayload{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Role:       p.Role.String(),
		IsVerified: p.Verified,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
