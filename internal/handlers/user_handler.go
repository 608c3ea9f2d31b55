package handlers

import (
	"net/http"

	"recipebook_backend/internal/middleware"
	"recipebook_backend/internal/services"
	"recipebook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes wires the public user endpoints plus the authenticated
// profile pair. /me deliberately has no POST: the router answers 405.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/create", h.Create)
		user.POST("/token", h.Token)
	}

	me := rg.Group("/user/me")
	me.Use(middleware.TokenAuthMiddleware(h.authService))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}
}

// Create godoc
// @Summary  Register a new user
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateUserRequest true "user"
// @Success  201 {object} dto.UserResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /user/create [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.CreateUser(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Token godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body body dto.TokenRequest true "credentials"
// @Success  200 {object} dto.TokenResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /user/token [post]
func (h *UserHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.IssueToken(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMe godoc
// @Summary  Current user profile
// @Tags     user
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} dto.UserResponse
// @Failure  401 {object} apperrors.ErrorResponse
// @Router   /user/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetMe(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMe godoc
// @Summary  Update name and/or password
// @Tags     user
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.UpdateMeRequest true "fields to update"
// @Success  200 {object} dto.UserResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /user/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateMe(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
