package routes

import (
	"log"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/api/handlers"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/api/middleware"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/auth"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/config"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/repository"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize auth configuration and services
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml")
	if err != nil {
		log.Printf("Warning: Failed to load auth config, falling back to application config: %v", err)
		authConfig = &auth.AuthConfig{
			JWTSecret:       cfg.JWTSecret,
			Issuer:          "iterum-identity",
			TokenTTLMinutes: cfg.TokenTTLMinutes,
			BcryptCost:      cfg.BcryptCost,
		}
	}

	hasher := auth.NewPasswordHasher(authConfig.BcryptCost)
	issuer := auth.NewTokenIssuer(authConfig)
	authService := auth.NewAuthService(organizationRepo, userRepo, restaurantRepo, hasher, issuer)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(issuer)

	// Initialize services
	resolver := auth.NewAccessResolver(restaurantRepo)
	organizationService := service.NewOrganizationService(organizationRepo, userRepo, validator)
	restaurantService := service.NewRestaurantService(restaurantRepo, userRepo, resolver, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/switch-restaurant", authHandler.SwitchRestaurant)
		authGroup.POST("/introspect", authHandler.Introspect)
	}

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		// Restaurant routes
		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", restaurantHandler.ListRestaurants)
			restaurants.GET("/:id", restaurantHandler.GetRestaurant)
		}

		// Organization routes
		organizations := v1.Group("/organizations")
		{
			organizations.GET("/me", organizationHandler.GetMyOrganization)
			organizations.GET("/me/members", organizationHandler.ListMyOrganizationMembers)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
