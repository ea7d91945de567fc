package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"customers-api/internal/api/handler/dto"
	"customers-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-jwt-secret-key",
		TokenTTL:  30 * time.Minute,
	}
}

func TestGenerateBearerToken(t *testing.T) {
	t.Run("successfully generates token", func(t *testing.T) {
		h := NewAuthHandler(newTestAuthConfig(), logger)
		body, _ := json.Marshal(dto.TokenRequest{Username: "testuser"})
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.GenerateBearerToken(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, strings.HasPrefix(resp.Token, "Bearer "))

		token, err := jwt.Parse(strings.TrimPrefix(resp.Token, "Bearer "), func(*jwt.Token) (any, error) {
			return []byte("test-jwt-secret-key"), nil
		})
		require.NoError(t, err)
		sub, _ := token.Claims.GetSubject()
		assert.Equal(t, "testuser", sub)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), resp.ExpiresAt, time.Minute)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		h := NewAuthHandler(newTestAuthConfig(), logger)
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"  "}`))
		w := httptest.NewRecorder()

		h.GenerateBearerToken(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		h := NewAuthHandler(newTestAuthConfig(), logger)
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{`))
		w := httptest.NewRecorder()

		h.GenerateBearerToken(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires configured api key", func(t *testing.T) {
		cfg := newTestAuthConfig()
		cfg.APIKey = "k3y"
		h := NewAuthHandler(cfg, logger)

		w := httptest.NewRecorder()
		h.GenerateBearerToken(w, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"a","apiKey":"wrong"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.NewRecorder()
		h.GenerateBearerToken(w, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"a","apiKey":"k3y"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("defaults token ttl", func(t *testing.T) {
		h := NewAuthHandler(config.AuthConfig{JWTSecret: "s"}, logger)
		assert.Equal(t, defaultTokenTTL, h.cfg.TokenTTL)
	})
}
