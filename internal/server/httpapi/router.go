package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/models"
)

// NewRouter wires all endpoints. The /auth subtree is public except for
// /auth/me, which sits behind the bearer authenticator.
func NewRouter(h *Handlers, secretKey []byte, logger logging.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register(models.RoleCustomer))
		r.Post("/vendor/register", h.Register(models.RoleVendor))
		r.Post("/admin/register", h.Register(models.RoleAdmin))

		r.Post("/login", h.Login)
		r.Post("/login-otp", h.OtpLogin)
		r.Post("/verify-otp", h.VerifyOtp)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/verify-forgot-password-otp", h.VerifyForgotPasswordOtp)
		r.Get("/check-role/{contact}", h.CheckRole)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(secretKey))
			r.Get("/me", h.Me)
		})
	})

	return r
}
