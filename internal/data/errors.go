package data

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when no provider access token is configured.
var ErrMissingCredential = errors.New("provider access token is not configured")

// ProviderRejectedError reports a non-success status from the provider.
type ProviderRejectedError struct {
	StatusCode int
}

func (e *ProviderRejectedError) Error() string {
	return fmt.Sprintf("provider rejected request: status %d", e.StatusCode)
}

// TransportError reports that no response was received from the provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "provider unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
