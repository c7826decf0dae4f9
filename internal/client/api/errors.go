package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindNetwork: the request never reached the server or got no response.
	KindNetwork Kind = iota + 1
	// KindAuth: the server rejected the credentials (401/403). Expired
	// tokens surface here; there is no client-side proactive refresh.
	KindAuth
	// KindValidation: the server rejected the request (other 4xx).
	KindValidation
	// KindNotFound: the referenced resource has no match (404).
	KindNotFound
	// KindServer: the server failed (5xx).
	KindServer
	// KindDecode: a response arrived but its payload could not be
	// interpreted. Status still carries the HTTP status that came with it.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a structured request failure carrying the HTTP status and the
// server-provided message. The adapter never swallows one of these; handling
// is the caller's responsibility.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Body    []byte
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s failure (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("api: %s failure: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("api: %s failure (status %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// classify maps an HTTP status to a failure kind.
func classify(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// serverMessage extracts a human-readable message from an error payload.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsAuth reports whether err is an auth failure.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// SuccessIndicated reports whether err, despite being an error, carries
// evidence that the server accepted the operation: a 2xx status recorded on
// the failure, or a resource id echoed back in the payload. The backend's
// profile update is known to trip the error path this way; callers should
// check this before classifying such a failure as real.
func SuccessIndicated(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status >= 200 && apiErr.Status < 300 {
		return true
	}
	var payload struct {
		ID int64 `json:"id"`
	}
	if jsonErr := json.Unmarshal(apiErr.Body, &payload); jsonErr == nil && payload.ID != 0 {
		return true
	}
	return false
}
