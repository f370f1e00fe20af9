package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/auth"
	"stockmaster/internal/domain/users"
	"stockmaster/internal/infrastructure/http/v1/dto"
	"stockmaster/internal/infrastructure/http/v1/middleware"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
	users   users.Repository
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service, repo users.Repository) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
		users:       repo,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u := req.ToUser()
	if err := h.service.Register(ctx, u, req.Password); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := usercontext.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, u)
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)

	// Registration is admin-only; the bootstrap admin comes from seeding.
	protected.POST("/register", middleware.RequireRole(usercontext.RoleAdmin), h.Register)
	protected.GET("/me", h.Me)
}
