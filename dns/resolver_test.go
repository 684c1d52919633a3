package dns_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/festin"
	festindns "github.com/fwojciec/festin/dns"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs an in-process DNS server on a random UDP port.
func startServer(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	server := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = server.ActivateAndServe() }()
	t.Cleanup(func() { _ = server.Shutdown() })

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("dns server did not start")
	}
	return pc.LocalAddr().String()
}

func zone(w dns.ResponseWriter, req *dns.Msg) {
	resp := new(dns.Msg)
	resp.SetReply(req)

	switch req.Question[0].Name {
	case "alias.example.com.":
		resp.Answer = append(resp.Answer,
			&dns.CNAME{
				Hdr:    dns.RR_Header{Name: "alias.example.com.", Rrtype: dns.TypeCNAME, Class: dns.ClassINET, Ttl: 60},
				Target: "assets.s3.amazonaws.com.",
			},
			&dns.A{
				Hdr: dns.RR_Header{Name: "assets.s3.amazonaws.com.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60},
				A:   net.ParseIP("192.0.2.1"),
			},
		)
	case "plain.example.com.":
	case "broken.example.com.":
		resp.Rcode = dns.RcodeServerFailure
	case "refused.example.com.":
		resp.Rcode = dns.RcodeRefused
	case "slow.example.com.":
		time.Sleep(300 * time.Millisecond)
	default:
		resp.Rcode = dns.RcodeNameError
	}
	_ = w.WriteMsg(resp)
}

func newResolver(t *testing.T, opts ...festindns.Option) *festindns.Resolver {
	t.Helper()

	addr := startServer(t, zone)
	r, err := festindns.NewResolver(append([]festindns.Option{festindns.WithServers(addr)}, opts...)...)
	require.NoError(t, err)
	return r
}

func TestResolver_ResolveCNAME(t *testing.T) {
	t.Parallel()

	t.Run("returns targets without trailing dot", func(t *testing.T) {
		t.Parallel()

		targets, err := newResolver(t).ResolveCNAME(context.Background(), "alias.example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"assets.s3.amazonaws.com"}, targets)
	})

	t.Run("no records is empty", func(t *testing.T) {
		t.Parallel()

		targets, err := newResolver(t).ResolveCNAME(context.Background(), "plain.example.com")

		require.NoError(t, err)
		assert.Empty(t, targets)
	})

	t.Run("nxdomain is empty", func(t *testing.T) {
		t.Parallel()

		targets, err := newResolver(t).ResolveCNAME(context.Background(), "missing.example.com")

		require.NoError(t, err)
		assert.Empty(t, targets)
	})

	t.Run("servfail is transient", func(t *testing.T) {
		t.Parallel()

		_, err := newResolver(t).ResolveCNAME(context.Background(), "broken.example.com")

		require.Error(t, err)
		assert.Equal(t, festin.ETRANSIENT, festin.ErrorCode(err))
	})

	t.Run("refused is a transport error", func(t *testing.T) {
		t.Parallel()

		_, err := newResolver(t).ResolveCNAME(context.Background(), "refused.example.com")

		require.Error(t, err)
		assert.Equal(t, festin.ETRANSPORT, festin.ErrorCode(err))
	})

	t.Run("timeout is transient", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, festindns.WithTimeout(50*time.Millisecond))

		_, err := r.ResolveCNAME(context.Background(), "slow.example.com")

		require.Error(t, err)
		assert.Equal(t, festin.ETRANSIENT, festin.ErrorCode(err))
	})

	t.Run("falls through to the next server", func(t *testing.T) {
		t.Parallel()

		good := startServer(t, zone)
		bad := startServer(t, func(w dns.ResponseWriter, req *dns.Msg) {
			resp := new(dns.Msg)
			resp.SetRcode(req, dns.RcodeServerFailure)
			_ = w.WriteMsg(resp)
		})
		r, err := festindns.NewResolver(festindns.WithServers(bad, good))
		require.NoError(t, err)

		targets, err := r.ResolveCNAME(context.Background(), "alias.example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"assets.s3.amazonaws.com"}, targets)
	})
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	t.Run("adds default port", func(t *testing.T) {
		t.Parallel()

		r, err := festindns.NewResolver(festindns.WithServers("8.8.8.8", "1.1.1.1:5353", " "))

		require.NoError(t, err)
		assert.Equal(t, []string{"8.8.8.8:53", "1.1.1.1:5353"}, r.Servers())
	})

	t.Run("reads servers from config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resolv.conf")
		require.NoError(t, os.WriteFile(path, []byte("nameserver 192.0.2.53\n"), 0o644))

		r, err := festindns.NewResolver(festindns.WithConfigFile(path))

		require.NoError(t, err)
		assert.Equal(t, []string{"192.0.2.53:53"}, r.Servers())
	})

	t.Run("missing config file is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := festindns.NewResolver(festindns.WithConfigFile(filepath.Join(t.TempDir(), "nope")))

		require.Error(t, err)
		assert.Equal(t, festin.EINVALID, festin.ErrorCode(err))
	})
}
