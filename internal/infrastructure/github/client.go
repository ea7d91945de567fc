// Package github checks claimed usernames against the GitHub user directory.
package github

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"customers-api/internal/config"
	"customers-api/internal/domain/identity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	acceptHeader     = "application/vnd.github.v3+json"
	defaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "customers-api"
	defaultTimeout   = 10 * time.Second
	tracerName       = "customers-api/github"
)

var userLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "github_user_lookups_total",
	Help: "Total number of GitHub user lookups by outcome.",
}, []string{"outcome"})

type Client struct {
	baseURL    string
	userAgent  string
	token      string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

var _ identity.Lookup = (*Client)(nil)

func NewClient(cfg config.GitHubConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to github.NewClient, using default stderr handler")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer(tracerName),
		logger:     logger.With(slog.String("component", "githubClient")),
	}
}

// Lookup issues exactly one GET /users/{username}. It never retries.
func (c *Client) Lookup(ctx context.Context, username string) identity.Outcome {
	ctx, span := c.tracer.Start(ctx, "github.lookup_user",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("github.username", username)),
	)
	defer span.End()

	outcome := c.lookup(ctx, username, span)

	userLookupsTotal.WithLabelValues(outcome.String()).Inc()
	span.SetAttributes(attribute.String("github.outcome", outcome.String()))
	if outcome.Unavailable() {
		span.SetStatus(codes.Error, outcome.String())
	}
	return outcome
}

func (c *Client) lookup(ctx context.Context, username string, span trace.Span) identity.Outcome {
	logCtx := c.logger.With(slog.String("githubUsername", username))

	endpoint := c.baseURL + "/users/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to build GitHub request", slog.Any("error", err))
		span.RecordError(err)
		return identity.TransportFailure
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WarnContext(ctx, "GitHub request failed", slog.Any("error", err))
		span.RecordError(err)
		return identity.TransportFailure
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch resp.StatusCode {
	case http.StatusOK:
		return identity.Found
	case http.StatusNotFound:
		return identity.NotFound
	case http.StatusForbidden:
		logCtx.WarnContext(ctx, "GitHub rate limit reached",
			slog.String("remaining", resp.Header.Get("X-RateLimit-Remaining")),
			slog.String("reset", resp.Header.Get("X-RateLimit-Reset")))
		return identity.RateLimited
	default:
		logCtx.WarnContext(ctx, "Unexpected GitHub response", slog.Int("status", resp.StatusCode))
		return identity.TransportFailure
	}
}
