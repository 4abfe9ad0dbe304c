package routes

import (
	"time"

	"menuhub-backend/config"
	"menuhub-backend/handlers"
	"menuhub-backend/middleware"
	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultLoginRatePerMinute = 10

func SetupRoutes(r *gin.Engine, db *gorm.DB, images services.ImageStore) {
	maxImageBytes := int64(config.GetEnvInt("MAX_IMAGE_BYTES", utils.MaxUploadSize))

	svc := services.NewService(db, images, services.LogInvalidator{}).WithMaxImageBytes(maxImageBytes)

	// Initialize handlers
	publicHandler := &handlers.PublicHandler{Service: svc}
	healthHandler := &handlers.HealthHandler{DB: db}
	authHandler := &handlers.AuthHandler{Auth: services.NewAuthService(db), Service: svc, MaxImageBytes: maxImageBytes}
	dashboardHandler := &handlers.DashboardHandler{Service: svc, MaxImageBytes: maxImageBytes}
	adminHandler := &handlers.AdminHandler{Service: svc, MaxImageBytes: maxImageBytes}

	loginLimiter := middleware.NewRateLimiter(config.GetEnvInt("LOGIN_RATE_PER_MINUTE", defaultLoginRatePerMinute), time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/menus/:slug", publicHandler.GetMenu)
		api.GET("/menus/:slug/about", publicHandler.GetAbout)
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Use(loginLimiter.Middleware())
	{
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.POST("/restaurant/login", authHandler.RestaurantLogin)
		auth.POST("/signup", authHandler.Signup)
	}

	// Restaurant dashboard (require restaurant session)
	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	dashboard.Use(middleware.RestaurantMiddleware())
	{
		dashboard.GET("/restaurant", dashboardHandler.GetRestaurant)
		dashboard.GET("/menu", dashboardHandler.GetMenu)
		dashboard.GET("/export", dashboardHandler.ExportMenu)
		dashboard.POST("/import", dashboardHandler.ImportMenu)

		dashboard.PUT("/info", dashboardHandler.UpdateInfo)
		dashboard.PUT("/about", dashboardHandler.UpdateAbout)
		dashboard.PUT("/appearance", dashboardHandler.UpdateAppearance)
		dashboard.PUT("/password", dashboardHandler.ChangePassword)

		dashboard.POST("/categories", dashboardHandler.CreateCategory)
		dashboard.PUT("/categories/:id", dashboardHandler.UpdateCategory)
		dashboard.DELETE("/categories/:id", dashboardHandler.DeleteCategory)

		dashboard.POST("/items", dashboardHandler.CreateItem)
		dashboard.PUT("/items/:id", dashboardHandler.UpdateItem)
		dashboard.PATCH("/items/:id/availability", dashboardHandler.SetItemAvailability)
		dashboard.DELETE("/items/:id", dashboardHandler.DeleteItem)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/restaurants", adminHandler.ListRestaurants)
		admin.POST("/restaurants", adminHandler.CreateRestaurant)
		admin.GET("/restaurants/:id", adminHandler.GetRestaurant)
		admin.PATCH("/restaurants/:id/active", adminHandler.SetRestaurantActive)
		admin.PUT("/restaurants/:id/password", adminHandler.ResetPassword)
		admin.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)
	}

	// Health check
	r.GET("/health", healthHandler.Health)
}
