package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"customers-api/internal/api/problem"
	"customers-api/internal/config"
	"customers-api/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	logger = logger.With(slog.String("component", "AuthMiddleware"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := validateJWT(r, cfg.JWTSecret); err != nil {
				logger.WarnContext(r.Context(), "Rejected request", slog.Any("error", err), slog.String("path", r.URL.Path))
				problem.Respond(w, r, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validateJWT(r *http.Request, secret string) error {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return errors.New("invalid Authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
