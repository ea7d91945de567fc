package handler

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"customers-api/internal/api/handler/dto"
	"customers-api/internal/config"
	"customers-api/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

type AuthHandler struct {
	cfg    config.AuthConfig
	now    func() time.Time
	logger *slog.Logger
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthHandler{
		cfg:    cfg,
		now:    time.Now,
		logger: l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken issues a signed JWT for the customers endpoints.
//
// @Summary Generate a JWT bearer token
// @Description Issues an HS256 token. When an API key is configured the request must carry it.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Token request"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ProblemResponse "Invalid request parameters"
// @Failure 401 {object} dto.ProblemResponse "API key rejected"
// @Failure 500 {object} dto.ProblemResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		respondError(w, r, h.logger, apperrors.NewValidationError("username", "Username must not be empty"))
		return
	}

	if h.cfg.APIKey != "" && subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.cfg.APIKey)) != 1 {
		respondError(w, r, h.logger, fmt.Errorf("%w: api key mismatch for %s", apperrors.ErrUnauthorized, username))
		return
	}

	expiresAt := h.now().Add(h.cfg.TokenTTL).UTC()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": h.now().Unix(),
		"exp": expiresAt.Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		respondError(w, r, h.logger, fmt.Errorf("%w: sign token: %w", apperrors.ErrInternalServer, err))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", slog.String("username", username))
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + tokenString, ExpiresAt: expiresAt})
}
