package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/service"
)

// AuthHandler exposes the token endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// TokenResponse is the body returned on a successful login, in the OAuth2
// password-grant shape clients expect.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleToken issues a bearer token for valid credentials.
//
// HTTP: POST /api/v1/token
// Body: form-encoded `username` and `password` (not JSON — this follows
// the OAuth2 password-grant convention).
//
// 200 with {access_token, token_type:"bearer"} on success; 401 with a
// WWW-Authenticate challenge on bad credentials.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("invalid token request form", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "request body must be form-encoded"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
