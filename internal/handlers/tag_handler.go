package handlers

import (
	"net/http"

	"recipebook_backend/internal/middleware"
	"recipebook_backend/internal/services"
	"recipebook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	*BaseHandler
	tagService  services.TagService
	authService services.AuthService
}

func NewTagHandler(base *BaseHandler, tagService services.TagService, authService services.AuthService) *TagHandler {
	return &TagHandler{
		BaseHandler: base,
		tagService:  tagService,
		authService: authService,
	}
}

func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/recipe/tags")
	tags.Use(middleware.TokenAuthMiddleware(h.authService))
	{
		tags.GET("", h.List)
		tags.POST("", h.Create)
	}
}

// List godoc
// @Summary  List the caller's tags
// @Tags     tags
// @Produce  json
// @Security BearerAuth
// @Param    assigned_only query int false "1 restricts to tags used by a recipe"
// @Success  200 {array} dto.TagResponse
// @Failure  401 {object} apperrors.ErrorResponse
// @Router   /recipe/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"

	resp, err := h.tagService.List(userID, assignedOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary  Create a tag owned by the caller
// @Tags     tags
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.TagRequest true "tag"
// @Success  201 {object} dto.TagResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /recipe/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.TagRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.tagService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
