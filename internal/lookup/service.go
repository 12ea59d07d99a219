// Package lookup combines address validation, the provider lookup and
// reverse DNS into the single-lookup and comparison flows.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/TomasB/ipcheck/internal/ipaddr"
	"github.com/TomasB/ipcheck/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidAddress is returned for input that is not a dotted-quad IPv4 literal.
var ErrInvalidAddress = errors.New("invalid IP address")

// HostnameResolver resolves the PTR name of an address, returning
// data.NotAvailable when there is none.
type HostnameResolver interface {
	Resolve(ctx context.Context, address string) string
}

// Service runs lookups against a provider and a reverse resolver.
type Service struct {
	provider data.IPLookup
	resolver HostnameResolver
}

// NewService creates a Service. resolver may be nil, in which case
// records keep data.NotAvailable as their reverse DNS name.
func NewService(provider data.IPLookup, resolver HostnameResolver) *Service {
	return &Service{provider: provider, resolver: resolver}
}

// Lookup validates address, queries the provider and resolves its PTR name
// concurrently. A provider that reports itself not ready fails the lookup
// before any query is sent. A provider failure cancels the pending reverse lookup.
func (s *Service) Lookup(ctx context.Context, address string) (data.Record, error) {
	if !ipaddr.Valid(address) {
		return data.Record{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if rc, ok := s.provider.(data.ReadyChecker); ok {
		if err := rc.Ready(); err != nil {
			metrics.ProviderRequestsTotal.WithLabelValues(outcome(err)).Inc()
			return data.Record{}, err
		}
	}

	var (
		rec      data.Record
		hostname = data.NotAvailable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		rec, err = s.provider.LookupIP(gctx, address)
		metrics.ProviderDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		metrics.ProviderRequestsTotal.WithLabelValues(outcome(err)).Inc()
		return err
	})
	if s.resolver != nil {
		g.Go(func() error {
			hostname = s.resolver.Resolve(gctx, address)
			if hostname == data.NotAvailable {
				metrics.ReverseDNSTotal.WithLabelValues("not_available").Inc()
			} else {
				metrics.ReverseDNSTotal.WithLabelValues("resolved").Inc()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Debug("lookup failed", "ip", address, "error", err)
		return data.Record{}, err
	}

	rec.ReverseDNS = hostname
	return rec, nil
}

// LookupAndRecord performs Lookup and appends a successful result to store.
func (s *Service) LookupAndRecord(ctx context.Context, store *history.Store, address string) (data.Record, error) {
	rec, err := s.Lookup(ctx, address)
	if err != nil {
		return data.Record{}, err
	}

	if store.Record(address, rec) {
		metrics.HistoryEntriesTotal.Inc()
		slog.Debug("history entry added", "ip", address)
	}
	return rec, nil
}

func outcome(err error) string {
	var (
		rejected  *data.ProviderRejectedError
		transport *data.TransportError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, data.ErrMissingCredential):
		return "missing_credential"
	case errors.As(err, &rejected):
		return "rejected"
	case errors.As(err, &transport):
		return "transport"
	default:
		return "error"
	}
}
