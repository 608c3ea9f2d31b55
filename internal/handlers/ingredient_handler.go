package handlers

import (
	"net/http"

	"recipebook_backend/internal/middleware"
	"recipebook_backend/internal/services"
	"recipebook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	*BaseHandler
	ingredientService services.IngredientService
	authService       services.AuthService
}

func NewIngredientHandler(base *BaseHandler, ingredientService services.IngredientService, authService services.AuthService) *IngredientHandler {
	return &IngredientHandler{
		BaseHandler:       base,
		ingredientService: ingredientService,
		authService:       authService,
	}
}

func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/recipe/ingredients")
	ingredients.Use(middleware.TokenAuthMiddleware(h.authService))
	{
		ingredients.GET("", h.List)
		ingredients.POST("", h.Create)
	}
}

// List godoc
// @Summary  List the caller's ingredients
// @Tags     ingredients
// @Produce  json
// @Security BearerAuth
// @Param    assigned_only query int false "1 restricts to ingredients used by a recipe"
// @Success  200 {array} dto.IngredientResponse
// @Failure  401 {object} apperrors.ErrorResponse
// @Router   /recipe/ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"

	resp, err := h.ingredientService.List(userID, assignedOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary  Create an ingredient owned by the caller
// @Tags     ingredients
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.IngredientRequest true "ingredient"
// @Success  201 {object} dto.IngredientResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /recipe/ingredients [post]
func (h *IngredientHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.IngredientRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.ingredientService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
