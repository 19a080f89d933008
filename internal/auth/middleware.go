package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakif/book-catalog/internal/model"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow
// the userID value we store in the request context.
type contextKey string

const userIDKey contextKey = "userID"

// UserStore is the account lookup the middleware needs to resolve a
// token's subject. Declared here (rather than importing the repository
// package) so the auth package depends only on the model.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// RequireAuth enforces bearer-token authentication on protected routes.
//
// It reads the `Authorization: Bearer <jwt>` header, validates the token,
// and resolves the subject to an account. Order matters for two reasons:
//   - a missing/malformed/expired token is rejected before any storage
//     access, so unauthenticated requests never touch the database
//   - a valid token whose account has been disabled (or deleted) since
//     issuance is still rejected, with a distinct 403 for the former
//
// On success the userID is stored in the request context for handlers.
func RequireAuth(tokens *TokenService, users UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeChallenge(w, "authorization header is required")
				return
			}

			// Expect exactly "Bearer <token>".
			scheme, tokenStr, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
				writeChallenge(w, "authorization header must be 'Bearer <token>'")
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				writeChallenge(w, "invalid or expired token")
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				writeChallenge(w, "invalid or expired token")
				return
			}
			if user.Disabled {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"forbidden","message":"inactive account"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeChallenge sends a 401 with the WWW-Authenticate challenge header,
// matching the error shape the handler package uses everywhere else.
func writeChallenge(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}

// UserIDFromContext retrieves the authenticated user's ID from the
// request context. Returns ("", false) if the request never passed
// through RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
