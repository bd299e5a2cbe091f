package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

func TestTenantLimit(t *testing.T) {
	m := NewRateLimitMiddleware(nil, 100, logger.NewNop())

	tests := []struct {
		name     string
		settings domain.Settings
		expected int
	}{
		{"no settings", nil, 100},
		{"json number", domain.Settings{"rate_limit": float64(250)}, 250},
		{"string", domain.Settings{"rate_limit": "40"}, 40},
		{"zero falls back", domain.Settings{"rate_limit": float64(0)}, 100},
		{"garbage falls back", domain.Settings{"rate_limit": "lots"}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.TenantLimit(&domain.Tenant{Settings: tt.settings}))
		})
	}
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewRateLimitMiddleware(nil, 1, logger.NewNop())
	router := gin.New()
	router.GET("/", m.GlobalRateLimit(1), m.TenantRateLimit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
