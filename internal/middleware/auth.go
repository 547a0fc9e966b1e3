package middleware

import (
	"net/http"
	"strings"

	"github.com/umersaeed/notesapi/internal/auth"
	"github.com/umersaeed/notesapi/internal/token"
)

// RequireAuth extracts the bearer token from the Authorization header,
// verifies it, and puts the embedded user snapshot into the request
// context. Missing or invalid credentials get a bare 401 with no body,
// which is what the existing clients expect, and the wrapped handler is
// never invoked. The middleware never touches the store.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := tokens.Verify(parts[1])
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := auth.WithUser(r.Context(), *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
