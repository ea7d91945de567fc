package dto

import "time"

type TokenRequest struct {
	Username string `json:"username" example:"admin"`
	APIKey   string `json:"apiKey,omitempty"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ProblemResponse documents the application/problem+json error body.
type ProblemResponse struct {
	Type    string              `json:"type" example:"https://tools.ietf.org/html/rfc7231#section-6.5.1"`
	Title   string              `json:"title" example:"One or more validation errors occurred."`
	Status  int                 `json:"status" example:"400"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
}
