package api

import (
	"errors"
	"fmt"
)

// Transport-level errors handled centrally by the client.
var (
	// ErrNetwork indicates the request produced no HTTP response at all.
	ErrNetwork = errors.New("network unreachable")
	// ErrUnauthorized indicates the session is missing or invalid (401).
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden indicates the server refused the authenticated caller (403).
	ErrForbidden = errors.New("forbidden")
)

// notAuthenticatedDetail is the detail string the backend returns alongside
// an invalid session, sometimes with a non-401 status.
const notAuthenticatedDetail = "Not authenticated"

// APIError is a rejection from the backend: any 4xx/5xx response. Detail
// carries the server-supplied detail text verbatim when present, for display
// at the call site.
type APIError struct {
	Detail string
	Status int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// Is lets errors.Is match the auth sentinels against server responses.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401 || e.Detail == notAuthenticatedDetail
	case ErrForbidden:
		return e.Status == 403
	}
	return false
}

// UserMessage extracts the message a failure notice should show: the
// server's detail text when the error carries one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
