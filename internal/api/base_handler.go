package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/api/dto"
	"github.com/kingrain94/tenancy-api/internal/service"
	"github.com/kingrain94/tenancy-api/internal/utils"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type BaseHandler struct {
	logger *logger.Logger
}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// writeServiceError maps the service error taxonomy onto HTTP. Only input
// and conflict errors carry their message; everything else gets a fixed
// body.
func (h *BaseHandler) writeServiceError(c *gin.Context, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("request failed", err)
	}
	c.JSON(status, dto.Error{Error: message})
}

func classify(err error) (int, string) {
	switch {
	// Orphans outrank whatever caused the rollback
	case errors.Is(err, service.ErrPartiallyRolledBack):
		return http.StatusInternalServerError, "Provisioning failed and could not be fully rolled back"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, publicMessage(err, service.ErrInvalidInput)
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, publicMessage(err, service.ErrConflict)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, utils.ErrNoTenantInContext):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, service.ErrUpstreamFailure):
		return http.StatusServiceUnavailable, "Service unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// publicMessage strips the wrapping down to the text the sentinel was
// wrapped with, e.g. "subdomain already in use".
func publicMessage(err error, sentinel error) string {
	var perr *service.ProvisioningError
	if errors.As(err, &perr) {
		err = perr.Cause
	}
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.Error{Error: msg})
}
