package routes

import (
	"net/http"

	"recipebook_backend/internal/handlers"
	"recipebook_backend/internal/logger"
	"recipebook_backend/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every HTTP route onto the engine.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	storageInstance storage.Storage,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.TagHandler.RegisterRoutes(api)
		appHandlers.IngredientHandler.RegisterRoutes(api)
		appHandlers.RecipeHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}

	// Uploaded files are served straight off disk when local storage is in
	// use. Other backends publish their own URLs.
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		ginRouter.Static("/files", local.BasePath())
		logger.Info("Static file route /files registered", "path", local.BasePath())
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
