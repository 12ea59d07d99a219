package lookup

import (
	"context"
	"strings"
	"sync"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/ipaddr"
	"github.com/TomasB/ipcheck/internal/metrics"
)

// Side names one of the two addresses in a comparison.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// Comparison pairs the records of both sides.
type Comparison struct {
	A data.Record `json:"a"`
	B data.Record `json:"b"`
}

// InvalidInputError names the sides whose address failed validation.
type InvalidInputError struct {
	Sides []Side
}

func (e *InvalidInputError) Error() string {
	return "invalid IP address on side " + joinSides(e.Sides)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidAddress }

// CompareFailedError carries the lookup error of each failing side.
// A nil field means that side succeeded.
type CompareFailedError struct {
	A error
	B error
}

func (e *CompareFailedError) Error() string {
	var parts []string
	if e.A != nil {
		parts = append(parts, string(SideA)+": "+e.A.Error())
	}
	if e.B != nil {
		parts = append(parts, string(SideB)+": "+e.B.Error())
	}
	return "lookup failed for " + strings.Join(parts, "; ")
}

// Unwrap exposes both underlying errors to errors.Is and errors.As.
func (e *CompareFailedError) Unwrap() []error {
	var errs []error
	if e.A != nil {
		errs = append(errs, e.A)
	}
	if e.B != nil {
		errs = append(errs, e.B)
	}
	return errs
}

// Sides returns the failing sides in order.
func (e *CompareFailedError) Sides() []Side {
	var sides []Side
	if e.A != nil {
		sides = append(sides, SideA)
	}
	if e.B != nil {
		sides = append(sides, SideB)
	}
	return sides
}

// Compare looks up both addresses concurrently and pairs the results.
// Nothing is written to history. Invalid input short-circuits before any
// network call.
func (s *Service) Compare(ctx context.Context, addressA, addressB string) (Comparison, error) {
	var invalid []Side
	if !ipaddr.Valid(addressA) {
		invalid = append(invalid, SideA)
	}
	if !ipaddr.Valid(addressB) {
		invalid = append(invalid, SideB)
	}
	if len(invalid) > 0 {
		metrics.ComparisonsTotal.WithLabelValues("invalid_input").Inc()
		return Comparison{}, &InvalidInputError{Sides: invalid}
	}

	var (
		cmp        Comparison
		errA, errB error
		wg         sync.WaitGroup
	)
	// Each side keeps its own error so one failure never cancels the other.
	wg.Add(2)
	go func() {
		defer wg.Done()
		cmp.A, errA = s.Lookup(ctx, addressA)
	}()
	go func() {
		defer wg.Done()
		cmp.B, errB = s.Lookup(ctx, addressB)
	}()
	wg.Wait()

	if errA != nil || errB != nil {
		metrics.ComparisonsTotal.WithLabelValues("lookup_failed").Inc()
		return Comparison{}, &CompareFailedError{A: errA, B: errB}
	}

	metrics.ComparisonsTotal.WithLabelValues("ok").Inc()
	return cmp, nil
}

func joinSides(sides []Side) string {
	s := make([]string, len(sides))
	for i, side := range sides {
		s[i] = string(side)
	}
	return strings.Join(s, ", ")
}
