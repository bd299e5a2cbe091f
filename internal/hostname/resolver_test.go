package hostname

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestResolver() *Resolver {
	return NewResolver(Options{
		RootDomain: "betelhub.com.br",
		DevHosts:   []string{"dev.internal"},
		Reserved:   []string{"api", "admin"},
	})
}

func TestResolve_TenantSubdomain(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve("imwniteroi.betelhub.com.br", nil)

	assert.Equal(t, Resolution{TenantScoped: true, Handle: "imwniteroi"}, res)
}

func TestResolve_LocalhostWithTenantQuery(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve("localhost", url.Values{"tenant": {"demo"}})

	assert.Equal(t, Resolution{TenantScoped: true, Handle: "demo"}, res)
}

func TestResolve_LocalhostWithoutQuery(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve("localhost", nil)

	assert.False(t, res.TenantScoped)
	assert.True(t, res.RootDomain)
	assert.Empty(t, res.Handle)
}

func TestResolve_Table(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name   string
		host   string
		query  url.Values
		handle string
	}{
		{name: "apex", host: "betelhub.com.br"},
		{name: "www", host: "www.betelhub.com.br"},
		{name: "two labels", host: "example.com"},
		{name: "single label", host: "intranet"},
		{name: "reserved label", host: "api.betelhub.com.br"},
		{name: "uppercase and port", host: "ACME.betelhub.com.br:8443", handle: "acme"},
		{name: "trailing dot", host: "acme.betelhub.com.br.", handle: "acme"},
		{name: "empty label", host: "acme..com.br"},
		{name: "invalid characters", host: "ac_me.betelhub.com.br"},
		{name: "leading hyphen", host: "-acme.betelhub.com.br"},
		{name: "public ip", host: "10.20.30.40"},
		{name: "public ip ignores query", host: "10.20.30.40", query: url.Values{"tenant": {"demo"}}},
		{name: "loopback ip with query", host: "127.0.0.1:3000", query: url.Values{"tenant": {"demo"}}, handle: "demo"},
		{name: "ipv6 loopback with port", host: "[::1]:3000", query: url.Values{"tenant": {"Demo"}}, handle: "demo"},
		{name: "bare ipv6 loopback", host: "::1", query: url.Values{"tenant": {"demo"}}, handle: "demo"},
		{name: "configured dev host", host: "dev.internal", query: url.Values{"tenant": {"demo"}}, handle: "demo"},
		{name: "localhost with invalid tenant", host: "localhost", query: url.Values{"tenant": {"../etc"}}},
		{name: "localhost with reserved tenant", host: "localhost", query: url.Values{"tenant": {"www"}}},
		{name: "query ignored on real hosts", host: "acme.betelhub.com.br", query: url.Values{"tenant": {"other"}}, handle: "acme"},
		{name: "empty", host: ""},
		{name: "whitespace", host: "   "},
		{name: "unterminated bracket", host: "[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.host, tt.query)

			if tt.handle == "" {
				assert.Equal(t, Resolution{RootDomain: true}, res)
				return
			}
			assert.Equal(t, Resolution{TenantScoped: true, Handle: tt.handle}, res)
		})
	}
}

func TestResolve_IsTotalAndDeterministic(t *testing.T) {
	r := newTestResolver()
	hosts := []string{
		"", ".", "..", "a.b.c", "[", "]", ":", "::", "[::1]", "a:b:c", "x.y.z:99999",
		"ÄÖÜ.example.com", "tenant.betelhub.com.br", "localhost:", "LOCALHOST",
		"a." + string(make([]byte, 300)) + ".com",
	}
	queries := []url.Values{nil, {}, {"tenant": {""}}, {"tenant": {"demo", "other"}}}

	for _, host := range hosts {
		for _, q := range queries {
			first := r.Resolve(host, q)
			second := r.Resolve(host, q)

			assert.Equal(t, first, second, "host %q", host)
			assert.NotEqual(t, first.TenantScoped, first.RootDomain, "host %q must get exactly one classification", host)
		}
	}
}

func TestIsReserved(t *testing.T) {
	r := newTestResolver()

	assert.True(t, r.IsReserved("www"))
	assert.True(t, r.IsReserved("betelhub"))
	assert.True(t, r.IsReserved("API"))
	assert.False(t, r.IsReserved("acme"))
}
