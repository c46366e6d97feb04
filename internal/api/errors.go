package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Kind classifies a failed API call. It is produced once at the HTTP boundary
// so callers can branch on the class of failure instead of inspecting raw
// status codes at every call site.
type Kind int

const (
	// KindUnauthenticated covers missing or rejected credentials (HTTP 401)
	KindUnauthenticated Kind = iota + 1
	// KindForbidden covers role-based denials (HTTP 403)
	KindForbidden
	// KindNotFound covers missing resources (HTTP 404)
	KindNotFound
	// KindValidation covers rejected request payloads (HTTP 422)
	KindValidation
	// KindNetwork covers transport failures and timeouts (no response)
	KindNetwork
	// KindServer covers 5xx and any unclassified response
	KindServer
)

// String returns the kind name for logging
func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every client call
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorKind extracts the Kind from err, or 0 when err is not an API error
func ErrorKind(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsKind reports whether err is an API error of the given kind
func IsKind(err error, kind Kind) bool {
	return ErrorKind(err) == kind
}

// errorBody is the failure payload shape returned by the backend. Validation
// failures carry a per-field errors map; everything else just a message.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// decodeError maps a non-2xx response to a typed Error
func decodeError(statusCode int, body []byte) *Error {
	var payload errorBody
	_ = json.Unmarshal(body, &payload)

	switch statusCode {
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthenticated, StatusCode: statusCode, Message: "authentication required"}
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, StatusCode: statusCode, Message: "operation not permitted"}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: statusCode, Message: "item not found"}
	case http.StatusUnprocessableEntity:
		return &Error{Kind: KindValidation, StatusCode: statusCode, Message: firstFieldError(payload)}
	default:
		message := payload.Message
		if message == "" {
			message = "server error"
		}
		return &Error{
			Kind:       KindServer,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("%s (status %d)", message, statusCode),
		}
	}
}

// networkError wraps a transport failure (timeout, refused connection)
func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("network error, check your connection: %v", err),
	}
}

// firstFieldError surfaces the first field message of a validation failure.
// Field order in the errors map is not stable, so keys are sorted for a
// deterministic choice.
func firstFieldError(payload errorBody) string {
	fields := make([]string, 0, len(payload.Errors))
	for field := range payload.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if messages := payload.Errors[field]; len(messages) > 0 {
			return messages[0]
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return "validation error"
}
