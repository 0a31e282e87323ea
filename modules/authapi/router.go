// Package authapi exposes the authentication services as a JSON HTTP API.
package authapi

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/taexpense/auth-service/svc/auth"
)

// RouterOptions configures which services the module mounts. Each service is
// optional: absent services leave their routes unregistered.
type RouterOptions struct {
	Password *auth.PasswordService
	OAuth    *auth.OAuthService
	OTP      *auth.OTPService
	Logger   *slog.Logger
}

// Router builds the /auth route tree.
//
//	r := chi.NewRouter()
//	r.Mount("/auth", authapi.Router(authapi.RouterOptions{
//	    Password: passwordSvc,
//	    OAuth:    oauthSvc,
//	    OTP:      otpSvc,
//	}))
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &handlers{
		password: opts.Password,
		oauth:    opts.OAuth,
		otp:      opts.OTP,
		log:      log,
	}

	r := chi.NewRouter()

	if opts.Password != nil {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
	}
	r.Post("/logout", h.logout)

	if opts.OAuth != nil {
		r.Route("/oauth/{provider}", func(r chi.Router) {
			r.Get("/start", h.oauthStart)
			r.Post("/callback", h.oauthCallback)
		})
	}

	if opts.OTP != nil {
		r.Route("/password/otp", func(r chi.Router) {
			r.Post("/request", h.otpRequest)
			r.Post("/verify", h.otpVerify)
		})
	}

	return r
}
