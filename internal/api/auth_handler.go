package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/api/dto"
	"github.com/kingrain94/tenancy-api/internal/identity"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	*BaseHandler
	auth Authenticator
}

func NewAuthHandler(auth Authenticator, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: &BaseHandler{logger: logger},
		auth:        auth,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	token, err := h.auth.Authenticate(h.RequestCtx(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) || errors.Is(err, identity.ErrInactiveIdentity) {
			c.JSON(http.StatusUnauthorized, dto.Error{Error: "Invalid credentials"})
			return
		}
		h.logger.Error("login failed", err)
		c.JSON(http.StatusServiceUnavailable, dto.Error{Error: "Service unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
