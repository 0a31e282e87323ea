package authapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taexpense/auth-service/pkg/binder"
	"github.com/taexpense/auth-service/pkg/logger"
	"github.com/taexpense/auth-service/svc/auth"
)

type handlers struct {
	password *auth.PasswordService
	oauth    *auth.OAuthService
	otp      *auth.OTPService
	log      *slog.Logger
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := binder.JSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	accessToken, err := h.password.Signup(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.logFailure(r, "signup failed", err)
		writeError(w, err)
		return
	}
	writeToken(w, accessToken)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := binder.JSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	accessToken, err := h.password.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logFailure(r, "login failed", err)
		writeError(w, err)
		return
	}
	writeToken(w, accessToken)
}

// logout exists for client symmetry. Bearer tokens are stateless, so the
// server has nothing to revoke; clients discard the token.
func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

type authorizationResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

func (h *handlers) oauthStart(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	authURL, err := h.oauth.Start(r.Context(), provider)
	if err != nil {
		h.logFailure(r, "oauth start failed", err, logger.Provider(provider))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authorizationResponse{AuthorizationURL: authURL})
}

type callbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (h *handlers) oauthCallback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	var req callbackRequest
	if err := binder.JSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	accessToken, err := h.oauth.Callback(r.Context(), provider, req.Code, req.State)
	if err != nil {
		h.logFailure(r, "oauth callback failed", err, logger.Provider(provider))
		writeError(w, err)
		return
	}
	writeToken(w, accessToken)
}

type otpRequestRequest struct {
	Email string `json:"email"`
}

func (h *handlers) otpRequest(w http.ResponseWriter, r *http.Request) {
	var req otpRequestRequest
	if err := binder.JSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.otp.Request(r.Context(), req.Email); err != nil {
		h.logFailure(r, "otp request failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "OTP sent"})
}

type otpVerifyRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password,omitempty"`
}

func (h *handlers) otpVerify(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if err := binder.JSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	accessToken, err := h.otp.Verify(r.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		h.logFailure(r, "otp verify failed", err)
		writeError(w, err)
		return
	}
	writeToken(w, accessToken)
}

func (h *handlers) logFailure(r *http.Request, msg string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, logger.Error(err), logger.Component("authapi"))
	for _, a := range attrs {
		args = append(args, a)
	}
	h.log.WarnContext(r.Context(), msg, args...)
}
