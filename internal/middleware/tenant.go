package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/hostname"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/service"
	"github.com/kingrain94/tenancy-api/internal/utils"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// Resolution outcomes as counted by the resolver metric
const (
	OutcomeTenant  = "tenant"
	OutcomeRoot    = "root"
	OutcomeUnknown = "unknown"
	OutcomeError   = "error"
)

//go:generate mockery --name TenantFinder --output ../mocks
type TenantFinder interface {
	FindBySubdomain(ctx context.Context, handle string) (*domain.Tenant, error)
}

type TenantMiddleware struct {
	resolver       *hostname.Resolver
	tenants        TenantFinder
	trustForwarded bool
	metrics        *observability.Metrics
	logger         *logger.Logger
}

func NewTenantMiddleware(
	resolver *hostname.Resolver,
	tenants TenantFinder,
	trustForwarded bool,
	metrics *observability.Metrics,
	logger *logger.Logger,
) *TenantMiddleware {
	return &TenantMiddleware{
		resolver:       resolver,
		tenants:        tenants,
		trustForwarded: trustForwarded,
		metrics:        metrics,
		logger:         logger,
	}
}

// RequestHost is the host the client asked for. X-Forwarded-Host is only
// honoured behind a trusted proxy.
func (m *TenantMiddleware) RequestHost(r *http.Request) string {
	if m.trustForwarded {
		if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
			return strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	return r.Host
}

// ResolveTenant binds the tenant named by the request host to the request.
// Root-domain requests and unknown handles get the same 404.
func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := m.resolver.Resolve(m.RequestHost(c.Request), c.Request.URL.Query())
		if !res.TenantScoped {
			m.metrics.ObserveResolution(OutcomeRoot)
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		tenant, err := m.tenants.FindBySubdomain(c.Request.Context(), res.Handle)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				m.metrics.ObserveResolution(OutcomeUnknown)
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			m.metrics.ObserveResolution(OutcomeError)
			m.logger.Error("tenant lookup failed", err, zap.String("handle", res.Handle))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
			return
		}

		m.metrics.ObserveResolution(OutcomeTenant)
		c.Set(string(utils.TenantKey), tenant)
		c.Set(string(utils.TenantIDKey), tenant.ID)
		c.Request = c.Request.WithContext(utils.WithTenantID(c.Request.Context(), tenant.ID))
		c.Next()
	}
}

// Tenant returns the tenant bound by ResolveTenant, or nil.
func Tenant(c *gin.Context) *domain.Tenant {
	v, ok := c.Get(string(utils.TenantKey))
	if !ok {
		return nil
	}
	tenant, _ := v.(*domain.Tenant)
	return tenant
}
