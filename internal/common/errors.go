// Package common defines shared sentinel errors used across the client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrNotAuthenticated is returned (and surfaced as a "please log in"
// notification) when a mutating action is attempted without a session.
var ErrNotAuthenticated = errors.New("not authenticated")
