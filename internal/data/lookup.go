package data

import "context"

// IPLookup defines the interface for provider-backed IP metadata lookups.
type IPLookup interface {
	// LookupIP queries the provider for a validated IPv4 literal.
	// Failures are reported as ErrMissingCredential, *ProviderRejectedError
	// or *TransportError. Implementations never retry.
	LookupIP(ctx context.Context, address string) (Record, error)
}

// ReadyChecker is implemented by lookups that can tell, without any I/O,
// whether a request would be refused locally.
type ReadyChecker interface {
	Ready() error
}

// TokenSource supplies the provider access token. An empty token means
// the credential is missing.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that never changes.
type StaticToken string

// Token returns the token itself.
func (t StaticToken) Token() string { return string(t) }
