// Package problem renders errors as RFC 7807 problem documents. It is the
// only place where an error's kind decides the HTTP status and body.
package problem

import (
	"encoding/json"
	"errors"
	"net/http"

	"customers-api/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

const ContentType = "application/problem+json"

const (
	TypeValidation      = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	TypeNotFound        = "https://tools.ietf.org/html/rfc7231#section-6.5.4"
	TypeInternal        = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
	TypeUnauthorized    = "https://tools.ietf.org/html/rfc7235#section-3.1"
	TypeTooManyRequests = "https://tools.ietf.org/html/rfc6585#section-4"

	TitleValidation      = "One or more validation errors occurred."
	TitleNotFound        = "Not Found"
	TitleInternal        = "An error occurred while processing your request."
	TitleUnauthorized    = "Unauthorized"
	TitleTooManyRequests = "Too Many Requests"
)

type Document struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
}

// FromError selects the document by error kind, never by message text.
// Anything unrecognised becomes the generic 500 document.
func FromError(err error, traceID string) Document {
	var failures apperrors.ValidationErrors
	switch {
	case errors.As(err, &failures) && failures.HasErrors():
		return Document{
			Type:    TypeValidation,
			Title:   TitleValidation,
			Status:  http.StatusBadRequest,
			Errors:  failures.ByField(),
			TraceID: traceID,
		}
	case errors.Is(err, apperrors.ErrNotFound):
		return newDocument(TypeNotFound, TitleNotFound, http.StatusNotFound, traceID)
	case errors.Is(err, apperrors.ErrUnauthorized):
		return newDocument(TypeUnauthorized, TitleUnauthorized, http.StatusUnauthorized, traceID)
	case errors.Is(err, apperrors.ErrTooManyRequests):
		return newDocument(TypeTooManyRequests, TitleTooManyRequests, http.StatusTooManyRequests, traceID)
	default:
		return Internal(traceID)
	}
}

func Internal(traceID string) Document {
	return newDocument(TypeInternal, TitleInternal, http.StatusInternalServerError, traceID)
}

func newDocument(typ, title string, status int, traceID string) Document {
	return Document{Type: typ, Title: title, Status: status, TraceID: traceID}
}

func Write(w http.ResponseWriter, doc Document) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(doc.Status)
	_ = json.NewEncoder(w).Encode(doc)
}

// TraceID prefers the active span's trace id and falls back to the chi
// request id.
func TraceID(r *http.Request) string {
	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return middleware.GetReqID(r.Context())
}

// Respond writes the document for err against the request's trace id.
func Respond(w http.ResponseWriter, r *http.Request, err error) Document {
	doc := FromError(err, TraceID(r))
	Write(w, doc)
	return doc
}
