package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/safeguard/internal/auth"
	"github.com/hongminglow/safeguard/internal/http/respond"
)

type ctxKey int

const userIDKey ctxKey = iota

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the token subject in the request context.
func Authenticate(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Message(w, http.StatusUnauthorized, respond.MsgUnauthorized)
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, respond.MsgUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the subject stored by Authenticate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
