package pages

import (
	"errors"

	"github.com/vidtube/client/internal/client/api"
)

// Notifier receives user-visible transient notifications. Presentation
// (toasts, banners) is outside this layer.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user to confirm a destructive action before any service
// call is issued.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(msg string) {}
func (NopNotifier) Error(msg string)   {}

const loginPrompt = "Please login to "

// errorMessage prefers the server-provided message when the failure carries
// one.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
