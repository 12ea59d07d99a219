package rdns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"
)

// ErrNoPTR is returned when the server answered without a PTR record.
var ErrNoPTR = errors.New("no PTR record")

// DNSClient implements AddrLookuper by sending PTR queries straight to one server.
type DNSClient struct {
	server string
	client *dns.Client
}

// NewDNSClient creates a client for server ("host" or "host:port", port 53 by default).
func NewDNSClient(server string) *DNSClient {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(strings.Trim(server, "[]"), "53")
	}
	return &DNSClient{server: server, client: &dns.Client{Net: "udp"}}
}

// LookupAddr queries the PTR records of addr.
func (c *DNSClient) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	question, err := dns.ReverseAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("reverse name for %s: %w", addr, err)
	}

	msg := new(dns.Msg)
	msg.SetQuestion(question, dns.TypePTR)

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.server)
	if err != nil {
		return nil, fmt.Errorf("ptr exchange: %w", err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("ptr query for %s: %s", addr, dns.RcodeToString[resp.Rcode])
	}

	var names []string
	for _, answer := range resp.Answer {
		if ptr, ok := answer.(*dns.PTR); ok {
			names = append(names, ptr.Ptr)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoPTR
	}
	return names, nil
}
