// Package identity describes the outcome of checking a claimed username
// against an external user directory.
package identity

import "context"

type Outcome int

const (
	// TransportFailure is the zero value so an unset outcome is never
	// mistaken for a successful lookup.
	TransportFailure Outcome = iota
	Found
	NotFound
	RateLimited
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case RateLimited:
		return "rate_limited"
	default:
		return "transport_failure"
	}
}

// Unavailable reports whether the directory could not answer the question.
func (o Outcome) Unavailable() bool {
	return o == RateLimited || o == TransportFailure
}

// Lookup performs exactly one directory call per invocation.
type Lookup interface {
	Lookup(ctx context.Context, username string) Outcome
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(ctx context.Context, username string) Outcome

func (f LookupFunc) Lookup(ctx context.Context, username string) Outcome {
	return f(ctx, username)
}
