package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/service"
	"github.com/kingrain94/tenancy-api/internal/utils"
)

type GuardMiddleware struct {
	guard *service.AccessGuard
}

func NewGuardMiddleware(guard *service.AccessGuard) *GuardMiddleware {
	return &GuardMiddleware{guard: guard}
}

// RequireTenantRole admits callers holding at least min in the resolved
// tenant. Must run after ResolveTenant and JWTAuth.
func (m *GuardMiddleware) RequireTenantRole(min domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := Tenant(c)
		if tenant == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		m.enforce(c, m.guard.RequireTenant(c.Request.Context(), PrincipalID(c), tenant, min))
	}
}

func (m *GuardMiddleware) RequireGlobalOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, m.guard.RequireGlobalOwner(c.Request.Context(), PrincipalID(c)))
	}
}

// enforce never tells the caller why it was denied.
func (m *GuardMiddleware) enforce(c *gin.Context, d service.Decision) {
	if !d.Allowed {
		if d.Reason == service.ReasonNotAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.Set(string(utils.DecisionKey), d)
	c.Next()
}

// AccessDecision returns the decision that admitted the request.
func AccessDecision(c *gin.Context) service.Decision {
	v, _ := c.Get(string(utils.DecisionKey))
	d, _ := v.(service.Decision)
	return d
}
