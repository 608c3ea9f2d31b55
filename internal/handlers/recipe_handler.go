package handlers

import (
	"net/http"
	"strings"

	"recipebook_backend/internal/middleware"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/services"
	"recipebook_backend/internal/services/dto"
	"recipebook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	*BaseHandler
	recipeService services.RecipeService
	authService   services.AuthService
}

func NewRecipeHandler(base *BaseHandler, recipeService services.RecipeService, authService services.AuthService) *RecipeHandler {
	return &RecipeHandler{
		BaseHandler:   base,
		recipeService: recipeService,
		authService:   authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipe/recipes")
	recipes.Use(middleware.TokenAuthMiddleware(h.authService))
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.FullUpdate)
		recipes.PATCH("/:id", h.PartialUpdate)
		recipes.DELETE("/:id", h.Delete)
		recipes.POST("/:id/upload-image", h.UploadImage)
	}
}

// List godoc
// @Summary  List the caller's recipes
// @Tags     recipes
// @Produce  json
// @Security BearerAuth
// @Param    tags query string false "comma-separated tag ids"
// @Param    ingredients query string false "comma-separated ingredient ids"
// @Success  200 {array} dto.RecipeResponse
// @Failure  401 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	filter := repositories.RecipeFilter{
		TagIDs:        splitIDParam(c.Query("tags")),
		IngredientIDs: splitIDParam(c.Query("ingredients")),
	}

	resp, err := h.recipeService.List(userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary  Create a recipe
// @Tags     recipes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.RecipeRequest true "recipe"
// @Success  201 {object} dto.RecipeDetailResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.recipeService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary  Recipe detail
// @Tags     recipes
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "recipe id"
// @Success  200 {object} dto.RecipeDetailResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.recipeService.Get(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FullUpdate godoc
// @Summary  Replace a recipe
// @Description Fields missing from the payload fall back to zero values and relation lists are replaced wholesale.
// @Tags     recipes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "recipe id"
// @Param    body body dto.RecipeRequest true "recipe"
// @Success  200 {object} dto.RecipeDetailResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes/{id} [put]
func (h *RecipeHandler) FullUpdate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.recipeService.FullUpdate(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PartialUpdate godoc
// @Summary  Update selected recipe fields
// @Tags     recipes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "recipe id"
// @Param    body body dto.PatchRecipeRequest true "fields to update"
// @Success  200 {object} dto.RecipeDetailResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes/{id} [patch]
func (h *RecipeHandler) PartialUpdate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PatchRecipeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.recipeService.PartialUpdate(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary  Delete a recipe
// @Tags     recipes
// @Security BearerAuth
// @Param    id path string true "recipe id"
// @Success  204
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary  Attach an image to a recipe
// @Tags     recipes
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "recipe id"
// @Param    image formData file true "image file"
// @Success  200 {object} dto.RecipeImageResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /recipe/recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.FieldValidationError("recipe", "image", "No image provided"))
		return
	}

	resp, err := h.recipeService.UploadImage(c.Request.Context(), userID, c.Param("id"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// splitIDParam turns "1,2,3" into a slice, dropping empty segments.
func splitIDParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
