package handlers

import (
	"net/http"

	"recipebook_backend/internal/middleware"
	"recipebook_backend/internal/services"
	"recipebook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the staff-only user console.
type AdminHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewAdminHandler(base *BaseHandler, userService services.UserService, authService services.AuthService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.TokenAuthMiddleware(h.authService), middleware.StaffMiddleware())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.GET("/users/:id", h.GetUser)
		admin.DELETE("/users/:id", h.DeleteUser)
	}
}

// ListUsers godoc
// @Summary  List users
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    page query int false "page number"
// @Param    page_size query int false "page size"
// @Success  200 {object} dto.UserListResponse
// @Failure  403 {object} apperrors.ErrorResponse
// @Router   /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.userService.AdminListUsers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary  Create a user with explicit flags
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.AdminCreateUserRequest true "user"
// @Success  201 {object} dto.AdminUserResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.AdminCreateUser(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetUser godoc
// @Summary  User detail
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  200 {object} dto.AdminUserResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	resp, err := h.userService.AdminGetUser(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary  Delete a user and their token
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  204
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.AdminDeleteUser(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
