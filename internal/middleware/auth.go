package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/studydesk-app/studydesk/internal/auth"
	"github.com/studydesk-app/studydesk/internal/token"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// RequireAuth verifies the session cookie and populates the caller's
// Identity in the request context. This is the single enforcement point for
// every protected route: handlers read the identity from the context and
// perform no cookie checks of their own. An absent cookie and an invalid
// token are both 401; an expired or tampered token is treated as invalid.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, "Unauthorized")
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
