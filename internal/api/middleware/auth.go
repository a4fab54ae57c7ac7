package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/plinkolabs/plinko/internal/api/apierr"
	"github.com/plinkolabs/plinko/internal/model"
	"github.com/plinkolabs/plinko/internal/services/wallet"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth creates session authentication middleware. Mutating ledger entry
// points need a connected wallet so the caller address is known.
func Auth(walletService *wallet.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := walletService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *wallet.Session {
	session, _ := ctx.Value(sessionContextKey).(*wallet.Session)
	return session
}

// MustGetCaller returns the authenticated caller address or panics.
// Only use behind the Auth middleware.
func MustGetCaller(ctx context.Context) model.Address {
	session := GetSession(ctx)
	if session == nil {
		panic("caller not present in context; missing Auth middleware")
	}
	return session.Address
}
