package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
	"github.com/ashrith-07/campus-bites-sub000/pkg/response"
)

// Recovery turns a downstream panic into a logged 500 instead of a
// dead worker.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.WithCtx(r.Context()).Error("panic recovered",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.Error(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
