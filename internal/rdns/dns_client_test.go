package rdns

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startDNSServer serves PTR answers from zone on a loopback UDP port.
func startDNSServer(t *testing.T, zone map[string]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)
		q := req.Question[0]
		if name, ok := zone[q.Name]; ok && q.Qtype == dns.TypePTR {
			m.Answer = append(m.Answer, &dns.PTR{
				Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
				Ptr: name,
			})
		} else {
			m.SetRcode(req, dns.RcodeNameError)
		}
		_ = w.WriteMsg(m)
	})

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("dns server did not start")
	}
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestDNSClient_LookupAddr(t *testing.T) {
	addr := startDNSServer(t, map[string]string{
		"1.1.1.1.in-addr.arpa.": "one.one.one.one.",
	})
	client := NewDNSClient(addr)

	names, err := client.LookupAddr(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 || names[0] != "one.one.one.one." {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestDNSClient_NXDomain(t *testing.T) {
	addr := startDNSServer(t, map[string]string{})
	client := NewDNSClient(addr)

	if _, err := client.LookupAddr(context.Background(), "192.0.2.1"); err == nil {
		t.Fatal("expected error for missing PTR record")
	}
}

func TestDNSClient_InvalidAddress(t *testing.T) {
	client := NewDNSClient("127.0.0.1:53")

	if _, err := client.LookupAddr(context.Background(), "not-an-ip"); err == nil {
		t.Fatal("expected error for invalid address")
	}
}

func TestDNSClient_ThroughResolver(t *testing.T) {
	addr := startDNSServer(t, map[string]string{
		"8.8.8.8.in-addr.arpa.": "dns.google.",
	})
	r := NewResolver(NewDNSClient(addr), time.Second)

	if got := r.Resolve(context.Background(), "8.8.8.8"); got != "dns.google" {
		t.Errorf("expected dns.google, got %q", got)
	}
	if got := r.Resolve(context.Background(), "192.0.2.1"); got != NotAvailable {
		t.Errorf("expected %q, got %q", NotAvailable, got)
	}
}

func TestNewDNSClient_DefaultPort(t *testing.T) {
	if got := NewDNSClient("9.9.9.9").server; got != "9.9.9.9:53" {
		t.Errorf("expected 9.9.9.9:53, got %s", got)
	}
	if got := NewDNSClient("9.9.9.9:5353").server; got != "9.9.9.9:5353" {
		t.Errorf("expected 9.9.9.9:5353, got %s", got)
	}
}

