package middleware

import (
	"net/http"
	"runtime/debug"

	"jobcard-backend/internal/logger"
	"jobcard-backend/pkg/utils"
)

func PanicRecovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered", "error", err, "path", r.URL.Path, "stack", string(debug.Stack()))
					utils.Message(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
