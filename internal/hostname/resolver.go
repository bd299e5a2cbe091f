// Package hostname classifies the origin of a request into a tenant handle
// or the platform root.
package hostname

import (
	"net"
	"net/url"
	"strings"

	"github.com/kingrain94/tenancy-api/internal/domain"
)

// TenantQueryParam is read instead of the hostname on development hosts.
const TenantQueryParam = "tenant"

// Resolution is the per-request classification of a hostname.
// Exactly one of TenantScoped and RootDomain is true.
type Resolution struct {
	TenantScoped bool   `json:"is_tenant_scoped"`
	Handle       string `json:"handle,omitempty"`
	RootDomain   bool   `json:"is_root_domain"`
}

var root = Resolution{RootDomain: true}

type Options struct {
	// RootDomain is the platform's apex domain, e.g. "betelhub.com.br".
	// Its first label is reserved and never resolves to a tenant.
	RootDomain string

	// DevHosts are extra hostnames treated like localhost.
	DevHosts []string

	// Reserved lists further labels that never name a tenant.
	Reserved []string
}

type Resolver struct {
	devHosts map[string]struct{}
	reserved map[string]struct{}
}

func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		devHosts: map[string]struct{}{"localhost": {}},
		reserved: map[string]struct{}{"www": {}},
	}
	for _, h := range opts.DevHosts {
		if h = normalize(h); h != "" {
			r.devHosts[h] = struct{}{}
		}
	}
	for _, label := range opts.Reserved {
		if label = normalize(label); label != "" {
			r.reserved[label] = struct{}{}
		}
	}
	if apex := normalize(opts.RootDomain); apex != "" {
		r.reserved[strings.SplitN(apex, ".", 2)[0]] = struct{}{}
	}
	return r
}

// Resolve classifies host. It never fails: anything it cannot make sense of
// is treated as the root domain.
func (r *Resolver) Resolve(host string, query url.Values) Resolution {
	host = normalize(stripPort(host))
	if host == "" {
		return root
	}

	if r.isDevHost(host) {
		return r.fromLabel(query.Get(TenantQueryParam))
	}

	// Any other IP literal has no subdomain to speak of
	if net.ParseIP(host) != nil {
		return root
	}

	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return root
	}
	for _, label := range labels {
		if label == "" {
			return root
		}
	}

	return r.fromLabel(labels[0])
}

func (r *Resolver) isDevHost(host string) bool {
	if _, ok := r.devHosts[host]; ok {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (r *Resolver) fromLabel(label string) Resolution {
	label = normalize(label)
	if !domain.IsValidSubdomain(label) {
		return root
	}
	if r.IsReserved(label) {
		return root
	}
	return Resolution{TenantScoped: true, Handle: label}
}

// IsReserved reports whether label can never name a tenant.
func (r *Resolver) IsReserved(label string) bool {
	_, reserved := r.reserved[normalize(label)]
	return reserved
}

func normalize(s string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
}

// stripPort removes a trailing port while leaving bare IPv6 literals alone.
func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end > 0 {
			return host[1:end]
		}
		return ""
	}
	if strings.Count(host, ":") == 1 {
		return host[:strings.Index(host, ":")]
	}
	return host
}
