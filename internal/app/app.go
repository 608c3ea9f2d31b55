package app

import (
	"errors"
	"fmt"

	"recipebook_backend/internal/config"
	"recipebook_backend/internal/handlers"
	"recipebook_backend/internal/logger"
	"recipebook_backend/internal/middleware"
	"recipebook_backend/internal/models"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/routes"
	"recipebook_backend/internal/services"
	"recipebook_backend/internal/storage"
	"recipebook_backend/internal/validator"
	"recipebook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := SeedFirstSuperuser(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first superuser", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// OpenDatabase opens a GORM connection for the configured driver.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	// TranslateError maps dialect duplicate-key violations onto
	// gorm.ErrDuplicatedKey so repositories can detect them portably.
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// Migrate keeps the schema current across all supported dialects.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()

	routes.RegisterRoutes(ginRouter, appHandlers, storageInstance)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	tokenRepo := repositories.NewAuthTokenRepository(gormDB)
	tagRepo := repositories.NewTagRepository(gormDB)
	ingredientRepo := repositories.NewIngredientRepository(gormDB)
	recipeRepo := repositories.NewRecipeRepository(gormDB)

	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, tokenRepo)
	tagService := services.NewTagService(tagRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)
	recipeService := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, storageInstance, cfg.Upload.MaxSize)

	return &services.ServiceContainer{
		UserService:       userService,
		AuthService:       authService,
		TagService:        tagService,
		IngredientService: ingredientService,
		RecipeService:     recipeService,
		Storage:           storageInstance,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		UserHandler:       handlers.NewUserHandler(baseHandler, container.UserService, container.AuthService),
		TagHandler:        handlers.NewTagHandler(baseHandler, container.TagService, container.AuthService),
		IngredientHandler: handlers.NewIngredientHandler(baseHandler, container.IngredientService, container.AuthService),
		RecipeHandler:     handlers.NewRecipeHandler(baseHandler, container.RecipeService, container.AuthService),
		AdminHandler:      handlers.NewAdminHandler(baseHandler, container.UserService, container.AuthService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	// A known path hit with the wrong verb answers 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewMethodNotAllowedError())
	})

	return router
}

// SeedFirstSuperuser creates the initial staff account when configured and
// absent. Existing accounts are never touched.
func SeedFirstSuperuser(db *gorm.DB, cfg *config.Config) error {
	adminEmail := services.NormalizeEmail(cfg.Admin.Email)
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password not configured. Skipping superuser seeding.")
		return nil
	}

	var admin models.User
	result := db.Where("email = ?", adminEmail).First(&admin)
	if result.Error == nil {
		logger.Info("Superuser already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for superuser: %w", result.Error)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Name:         "Administrator",
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	logger.Info("Created first superuser", "email", adminEmail)
	return nil
}
