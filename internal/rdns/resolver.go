// Package rdns resolves the PTR hostname of an address on a best-effort basis.
package rdns

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"
)

// NotAvailable is returned whenever no hostname could be resolved.
const NotAvailable = "N/A"

// DefaultTimeout bounds a single reverse lookup when none is configured.
const DefaultTimeout = 3 * time.Second

// AddrLookuper performs reverse lookups. *net.Resolver satisfies it.
type AddrLookuper interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Resolver performs bounded reverse DNS lookups and never fails.
type Resolver struct {
	lookuper AddrLookuper
	timeout  time.Duration
}

// NewResolver creates a Resolver. A nil lookuper uses the system resolver.
func NewResolver(lookuper AddrLookuper, timeout time.Duration) *Resolver {
	if lookuper == nil {
		lookuper = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{lookuper: lookuper, timeout: timeout}
}

// Resolve returns the first PTR name for address without its trailing dot,
// or NotAvailable on any failure.
func (r *Resolver) Resolve(ctx context.Context, address string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names, err := r.lookuper.LookupAddr(ctx, address)
	if err != nil {
		slog.Debug("reverse lookup failed", "ip", address, "error", err)
		return NotAvailable
	}

	for _, name := range names {
		if name = strings.TrimSuffix(strings.TrimSpace(name), "."); name != "" {
			return name
		}
	}
	return NotAvailable
}
