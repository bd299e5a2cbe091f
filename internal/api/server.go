package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/middleware"
)

const maxRequestSize = 1 << 20

type Server struct {
	admin      *AdminHandler
	tenant     *TenantHandler
	login      *AuthHandler
	auth       *middleware.AuthMiddleware
	tenants    *middleware.TenantMiddleware
	guard      *middleware.GuardMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
	globalRate int
}

type ServerDeps struct {
	Admin      *AdminHandler
	Tenant     *TenantHandler
	Login      *AuthHandler
	Auth       *middleware.AuthMiddleware
	Tenants    *middleware.TenantMiddleware
	Guard      *middleware.GuardMiddleware
	RateLimit  *middleware.RateLimitMiddleware
	Validation *middleware.ValidationMiddleware

	// GlobalRateLimit is the per-IP request budget per minute
	GlobalRateLimit int
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		admin:      deps.Admin,
		tenant:     deps.Tenant,
		login:      deps.Login,
		auth:       deps.Auth,
		tenants:    deps.Tenants,
		guard:      deps.Guard,
		rateLimit:  deps.RateLimit,
		validation: deps.Validation,
		globalRate: deps.GlobalRateLimit,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.validation.ValidateRequestSize(maxRequestSize))
	api.Use(s.validation.ValidateContentType("application/json"))
	api.Use(s.rateLimit.GlobalRateLimit(s.globalRate))

	api.POST("/auth/login", s.login.Login)

	admin := api.Group("/admin", s.auth.JWTAuth(), s.guard.RequireGlobalOwner())
	{
		admin.POST("/tenants/provision", s.admin.ProvisionTenant)
		admin.GET("/tenants", s.admin.ListTenants)
		admin.PATCH("/tenants/:id", s.admin.UpdateTenant)
		admin.DELETE("/tenants/:id", s.admin.DeactivateTenant)
		admin.GET("/logs", s.admin.RecentLogs)
	}

	tenant := api.Group("/tenant", s.tenants.ResolveTenant(), s.rateLimit.TenantRateLimit())
	{
		tenant.GET("", s.tenant.GetTenant)

		member := tenant.Group("", s.auth.JWTAuth(), s.guard.RequireTenantRole(domain.RoleMember))
		member.GET("/me", s.tenant.Me)
		member.GET("/members", s.tenant.ListMembers)

		admin := tenant.Group("/members", s.auth.JWTAuth(), s.guard.RequireTenantRole(domain.RoleAdmin))
		admin.POST("", s.tenant.AddMember)
		admin.PATCH("/:principal_id", s.tenant.UpdateMember)
	}
}
