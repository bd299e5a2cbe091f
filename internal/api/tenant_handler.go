package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/api/dto"
	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/middleware"
	"github.com/kingrain94/tenancy-api/internal/service"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

//go:generate mockery --name MembershipService --output ../mocks
type MembershipService interface {
	List(ctx context.Context) ([]domain.Membership, error)
	Add(ctx context.Context, actor service.Decision, principalID string, role domain.Role) (*domain.Membership, error)
	Update(ctx context.Context, actor service.Decision, principalID string, patch service.MembershipPatch) (*domain.Membership, error)
}

// TenantHandler serves the routes of the tenant resolved from the request
// host.
type TenantHandler struct {
	*BaseHandler
	members MembershipService
}

func NewTenantHandler(members MembershipService, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{
		BaseHandler: &BaseHandler{logger: logger},
		members:     members,
	}
}

// GetTenant godoc
// @Summary Current tenant
// @Description Public information about the tenant named by the request host
// @Tags tenant
// @Produce json
// @Success 200 {object} dto.PublicTenantResponse
// @Failure 404 {object} dto.Error
// @Router /tenant [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant := middleware.Tenant(c)
	if tenant == nil || !tenant.IsActive() {
		c.JSON(http.StatusNotFound, dto.Error{Error: "Not found"})
		return
	}

	c.JSON(http.StatusOK, dto.FromPublicTenant(tenant))
}

// Me godoc
// @Summary Caller's access
// @Description The caller's effective role in the current tenant
// @Tags tenant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Router /tenant/me [get]
func (h *TenantHandler) Me(c *gin.Context) {
	d := middleware.AccessDecision(c)
	resp := dto.MeResponse{
		PrincipalID: middleware.PrincipalID(c),
		Role:        d.Role.String(),
		GlobalOwner: d.GlobalOwner,
	}
	if tenant := middleware.Tenant(c); tenant != nil {
		resp.TenantID = tenant.ID
	}

	c.JSON(http.StatusOK, resp)
}

// ListMembers godoc
// @Summary List members
// @Tags tenant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MembershipResponse
// @Failure 403 {object} dto.Error
// @Router /tenant/members [get]
func (h *TenantHandler) ListMembers(c *gin.Context) {
	memberships, err := h.members.List(h.RequestCtx(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMemberships(memberships))
}

// AddMember godoc
// @Summary Add a member
// @Description Give an existing principal a role in the current tenant. Only the platform owner may grant owner.
// @Tags tenant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddMemberRequest true "Principal and role"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /tenant/members [post]
func (h *TenantHandler) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	membership, err := h.members.Add(h.RequestCtx(c), middleware.AccessDecision(c), req.PrincipalID, role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMembership(membership))
}

// UpdateMember godoc
// @Summary Update a member
// @Description Change a member's role or status. The last admin cannot be demoted or deactivated.
// @Tags tenant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param principal_id path string true "Principal ID"
// @Param body body dto.UpdateMemberRequest true "Fields to change"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /tenant/members/{principal_id} [patch]
func (h *TenantHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	patch, err := req.ToMembershipPatch()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	membership, err := h.members.Update(h.RequestCtx(c), middleware.AccessDecision(c), c.Param("principal_id"), patch)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMembership(membership))
}
