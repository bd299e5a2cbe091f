package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// TenantRateLimitSetting is the tenant settings key overriding the default
// per-tenant limit.
const TenantRateLimitSetting = "rate_limit"

const rateLimitWindow = time.Minute

type RateLimitMiddleware struct {
	redis        redis.Cmdable
	defaultLimit int
	logger       *logger.Logger
}

// NewRateLimitMiddleware builds the limiter. A nil client disables it.
func NewRateLimitMiddleware(client redis.Cmdable, defaultLimit int, logger *logger.Logger) *RateLimitMiddleware {
	if defaultLimit <= 0 {
		defaultLimit = 1000
	}
	return &RateLimitMiddleware{
		redis:        client,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// TenantRateLimit counts requests per resolved tenant. Must run after
// ResolveTenant.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := Tenant(c)
		if m.redis == nil || tenant == nil {
			c.Next()
			return
		}
		m.limit(c, fmt.Sprintf("rate_limit:tenant:%s", tenant.ID), m.TenantLimit(tenant), "Rate limit exceeded")
	}
}

// GlobalRateLimit counts requests per client IP.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.redis == nil || limit <= 0 {
			c.Next()
			return
		}
		m.limit(c, fmt.Sprintf("rate_limit:global:%s", c.ClientIP()), limit, "Global rate limit exceeded")
	}
}

func (m *RateLimitMiddleware) limit(c *gin.Context, key string, limit int, message string) {
	ctx := c.Request.Context()
	reset := strconv.FormatInt(time.Now().Add(rateLimitWindow).Unix(), 10)

	current, err := m.count(ctx, key)
	if err != nil {
		// Fail open
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Reset", reset)
	if current > int64(limit) {
		c.Header("X-RateLimit-Remaining", "0")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
		return
	}

	c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-current, 10))
	c.Next()
}

// count increments the window counter and returns the new value.
func (m *RateLimitMiddleware) count(ctx context.Context, key string) (int64, error) {
	pipe := m.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// TenantLimit reads the tenant's own limit from its settings, falling back
// to the configured default.
func (m *RateLimitMiddleware) TenantLimit(tenant *domain.Tenant) int {
	switch v := tenant.Settings[TenantRateLimitSetting].(type) {
	case float64:
		if v >= 1 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return m.defaultLimit
}
