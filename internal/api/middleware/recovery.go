package middleware

import (
	"log/slog"
	"net/http"

	"github.com/plinkolabs/plinko/internal/api/apierr"
)

// Recovery creates panic recovery middleware.
// Returns JSON error responses on panic.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in handler",
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
					)
					apierr.WriteError(w, apierr.NewInternalError())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
