package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"customers-api/internal/api/problem"
)

// ProblemRecoverer turns a panic anywhere below it into the generic 500
// problem document.
func ProblemRecoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "ProblemRecoverer"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "Recovered from panic",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				problem.Write(w, problem.Internal(problem.TraceID(r)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
