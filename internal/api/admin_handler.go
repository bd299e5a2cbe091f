package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/api/dto"
	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/service"
	"github.com/kingrain94/tenancy-api/pkg/logger"
	"github.com/kingrain94/tenancy-api/pkg/utils"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

//go:generate mockery --name Provisioner --output ../mocks
type Provisioner interface {
	Provision(ctx context.Context, req service.ProvisionRequest) (*service.ProvisionResult, error)
}

//go:generate mockery --name TenantDirectory --output ../mocks
type TenantDirectory interface {
	List(ctx context.Context) ([]domain.Tenant, error)
	Update(ctx context.Context, id string, patch domain.TenantPatch) (*domain.Tenant, error)
	Deactivate(ctx context.Context, id string) error
}

type LogReader interface {
	Recent(limit int, since time.Time) []observability.LogEntry
}

// AdminHandler serves the platform owner's API.
type AdminHandler struct {
	*BaseHandler
	provisioner Provisioner
	tenants     TenantDirectory
	logs        LogReader
}

func NewAdminHandler(provisioner Provisioner, tenants TenantDirectory, logs LogReader, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: &BaseHandler{logger: logger},
		provisioner: provisioner,
		tenants:     tenants,
		logs:        logs,
	}
}

// ProvisionTenant godoc
// @Summary Provision a tenant
// @Description Create a tenant together with its first administrator. Either everything is created or nothing is.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProvisionTenantRequest true "Tenant and administrator"
// @Success 201 {object} dto.ProvisionTenantResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Failure 503 {object} dto.Error
// @Router /admin/tenants/provision [post]
func (h *AdminHandler) ProvisionTenant(c *gin.Context) {
	var req dto.ProvisionTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	input, err := req.ToProvisionRequest()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.provisioner.Provision(h.RequestCtx(c), input)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProvisionResult(res))
}

// ListTenants godoc
// @Summary List all tenants
// @Description Every tenant regardless of status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TenantResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 503 {object} dto.Error
// @Router /admin/tenants [get]
func (h *AdminHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenants.List(h.RequestCtx(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenants(tenants))
}

// UpdateTenant godoc
// @Summary Update a tenant
// @Description Change name, status, plan or settings. The subdomain cannot change.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param body body dto.UpdateTenantRequest true "Fields to change"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{id} [patch]
func (h *AdminHandler) UpdateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	patch, err := req.ToTenantPatch()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	tenant, err := h.tenants.Update(h.RequestCtx(c), c.Param("id"), patch)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant))
}

// DeactivateTenant godoc
// @Summary Deactivate a tenant
// @Description Soft delete: the tenant becomes inactive and only the platform owner can reach it
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{id} [delete]
func (h *AdminHandler) DeactivateTenant(c *gin.Context) {
	if err := h.tenants.Deactivate(h.RequestCtx(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecentLogs godoc
// @Summary Recent log entries
// @Description Most recent entries of the in-process log buffer, oldest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 100)"
// @Param since query string false "RFC3339 timestamp or YYYY-MM-DD"
// @Success 200 {array} dto.LogEntryResponse
// @Failure 400 {object} dto.Error
// @Router /admin/logs [get]
func (h *AdminHandler) RecentLogs(c *gin.Context) {
	limit := defaultLogLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLogLimit)
	}

	var since time.Time
	if v := c.Query("since"); v != "" {
		t, err := utils.ParseTimeParam(v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		since = t
	}

	c.JSON(http.StatusOK, dto.FromLogEntries(h.logs.Recent(limit, since)))
}
