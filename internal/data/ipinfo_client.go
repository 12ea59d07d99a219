package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultProviderURL is the IPinfo API endpoint.
const DefaultProviderURL = "https://ipinfo.io"

// maxBodySize bounds how much of a provider response is read.
const maxBodySize = 1 << 20

// ErrMalformedResponse is returned when a success response cannot be decoded.
var ErrMalformedResponse = errors.New("malformed provider response")

// IPInfoClient implements IPLookup against the IPinfo HTTP API.
type IPInfoClient struct {
	baseURL string
	token   TokenSource
	client  *http.Client
}

// NewIPInfoClient creates a client for the provider at baseURL. Each request
// is bounded by timeout.
func NewIPInfoClient(baseURL string, token TokenSource, timeout time.Duration) *IPInfoClient {
	if baseURL == "" {
		baseURL = DefaultProviderURL
	}
	return &IPInfoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ready returns ErrMissingCredential when no access token is available.
func (c *IPInfoClient) Ready() error {
	if c.currentToken() == "" {
		return ErrMissingCredential
	}
	return nil
}

func (c *IPInfoClient) currentToken() string {
	if c.token == nil {
		return ""
	}
	return strings.TrimSpace(c.token.Token())
}

// LookupIP issues a single GET <baseURL>/<address> and normalizes the body.
func (c *IPInfoClient) LookupIP(ctx context.Context, address string) (Record, error) {
	token := c.currentToken()
	if token == "" {
		return Record{}, ErrMissingCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(address), nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Record{}, &TransportError{Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return Record{}, &ProviderRejectedError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Record{}, &TransportError{Err: err}
	}

	rec, err := decodeRecord(address, body)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return rec, nil
}

// unwrapURLError drops the *url.Error wrapper, whose message embeds the
// request URL, keeping only the cause.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
