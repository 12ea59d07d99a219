// Package response maps lookup errors onto HTTP responses.
package response

import (
	"errors"
	"net/http"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/lookup"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error          string   `json:"error"`
	Sides          []string `json:"sides,omitempty"`
	ProviderStatus int      `json:"provider_status,omitempty"`
}

// FromError returns the HTTP status and body describing err.
func FromError(err error) (int, ErrorResponse) {
	var (
		invalid   *lookup.InvalidInputError
		failed    *lookup.CompareFailedError
		rejected  *data.ProviderRejectedError
		transport *data.TransportError
	)

	resp := ErrorResponse{}
	if errors.As(err, &rejected) {
		resp.ProviderStatus = rejected.StatusCode
	}

	switch {
	case errors.As(err, &invalid):
		resp.Error = "invalid IP address"
		resp.Sides = sideNames(invalid.Sides)
		return http.StatusBadRequest, resp
	case errors.Is(err, lookup.ErrInvalidAddress):
		resp.Error = "invalid IP address"
		return http.StatusBadRequest, resp
	case errors.Is(err, data.ErrMissingCredential):
		resp.Error = "provider credential not configured"
		return http.StatusServiceUnavailable, resp
	case errors.As(err, &failed):
		resp.Error = "lookup failed"
		resp.Sides = sideNames(failed.Sides())
		return http.StatusBadGateway, resp
	case rejected != nil:
		resp.Error = "provider rejected request"
		return http.StatusBadGateway, resp
	case errors.As(err, &transport):
		resp.Error = "provider unreachable"
		return http.StatusGatewayTimeout, resp
	case errors.Is(err, data.ErrMalformedResponse):
		resp.Error = "malformed provider response"
		return http.StatusBadGateway, resp
	default:
		resp.Error = "lookup failed"
		return http.StatusInternalServerError, resp
	}
}

func sideNames(sides []lookup.Side) []string {
	out := make([]string, len(sides))
	for i, s := range sides {
		out[i] = string(s)
	}
	return out
}
