package authapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taexpense/auth-service/pkg/binder"
	"github.com/taexpense/auth-service/pkg/validator"
	"github.com/taexpense/auth-service/svc/auth"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeToken(w http.ResponseWriter, accessToken string) {
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// writeError maps domain errors onto HTTP statuses. Unclassified errors are
// reported as an opaque 500: their detail belongs in logs, not responses.
func writeError(w http.ResponseWriter, err error) {
	status, message := classify(err)
	writeJSON(w, status, errorResponse{Error: message})
}

func classify(err error) (int, string) {
	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return http.StatusBadRequest, auth.ErrEmailAlreadyExists.Error()
	case errors.Is(err, auth.ErrInvalidOrExpiredOTP):
		return http.StatusBadRequest, auth.ErrInvalidOrExpiredOTP.Error()
	case errors.Is(err, auth.ErrExchangeFailed):
		return http.StatusBadRequest, auth.ErrExchangeFailed.Error()
	case errors.Is(err, auth.ErrIdentityIncomplete):
		return http.StatusBadRequest, auth.ErrIdentityIncomplete.Error()
	case errors.Is(err, auth.ErrInvalidState):
		return http.StatusBadRequest, auth.ErrInvalidState.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, auth.ErrInvalidCredentials.Error()
	case errors.Is(err, auth.ErrUnverifiedEmail):
		return http.StatusForbidden, auth.ErrUnverifiedEmail.Error()
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, auth.ErrUserNotFound.Error()
	case errors.Is(err, auth.ErrFederationNotConfigured):
		return http.StatusInternalServerError, auth.ErrFederationNotConfigured.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
