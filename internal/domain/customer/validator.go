package customer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"customers-api/internal/domain/identity"
	"customers-api/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

const (
	FieldGitHubUsername = "githubUsername"
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldDateOfBirth    = "dateOfBirth"

	DefaultMinimumAge = 18
)

type Validator interface {
	// Validate normalizes req itself; messages quote values as sent.
	// It returns nil, apperrors.ValidationErrors, or an error wrapping
	// apperrors.ErrUpstreamUnavailable when the identity directory cannot answer.
	Validate(ctx context.Context, req Request) error
}

var _ Validator = (*requestValidator)(nil)

type requestValidator struct {
	identities identity.Lookup
	fields     *validator.Validate
	minimumAge int
	now        func() time.Time
	logger     *slog.Logger
}

type ValidatorOption func(*requestValidator)

func WithMinimumAge(years int) ValidatorOption {
	return func(v *requestValidator) {
		if years > 0 {
			v.minimumAge = years
		}
	}
}

func WithClock(now func() time.Time) ValidatorOption {
	return func(v *requestValidator) {
		if now != nil {
			v.now = now
		}
	}
}

func NewValidator(identities identity.Lookup, logger *slog.Logger, opts ...ValidatorOption) Validator {
	if identities == nil {
		panic("identity lookup cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewValidator, using default stderr handler")
	}

	v := &requestValidator{
		identities: identities,
		fields:     validator.New(validator.WithRequiredStructEnabled()),
		minimumAge: DefaultMinimumAge,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "customerValidator")),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *requestValidator) Validate(ctx context.Context, req Request) error {
	sentEmail := req.Email
	req = req.Normalized()
	var failures apperrors.ValidationErrors

	if req.FullName == "" {
		failures.Add(FieldFullName, "Full name must not be empty")
	}

	if !v.isEmail(req.Email) {
		failures.Add(FieldEmail, fmt.Sprintf("%s is not a valid email address", sentEmail))
	}

	switch {
	case req.DateOfBirthInvalid:
		failures.Add(FieldDateOfBirth, "The dateOfBirth field is not a valid date.")
	case req.DateOfBirth.IsZero() || AgeAt(req.DateOfBirth, v.now()) < v.minimumAge:
		failures.Add(FieldDateOfBirth, fmt.Sprintf("Customer must be at least %d years old", v.minimumAge))
	}

	if req.GitHubUsername == "" {
		failures.Add(FieldGitHubUsername, "GitHub username must not be empty")
	} else {
		outcome := v.identities.Lookup(ctx, req.GitHubUsername)
		switch {
		case outcome == identity.Found:
			v.logger.DebugContext(ctx, "GitHub user confirmed", slog.String("githubUsername", req.GitHubUsername))
		case outcome == identity.NotFound:
			failures.Add(FieldGitHubUsername, fmt.Sprintf("There is no GitHub user with username %s", req.GitHubUsername))
		case outcome.Unavailable():
			v.logger.WarnContext(ctx, "GitHub user could not be verified",
				slog.String("githubUsername", req.GitHubUsername), slog.String("outcome", outcome.String()))
			return fmt.Errorf("verify github user %q: %w", req.GitHubUsername,
				apperrors.WrapUpstreamError("github", outcome.String()))
		}
	}

	if failures.HasErrors() {
		v.logger.InfoContext(ctx, "Customer request failed validation", slog.Int("failures", len(failures)))
		return failures
	}
	return nil
}

func (v *requestValidator) isEmail(email string) bool {
	if email == "" {
		return false
	}
	if err := v.fields.Var(email, "email"); err != nil {
		return false
	}
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
