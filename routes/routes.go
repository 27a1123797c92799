package routes

import (
	"net/http"

	"category-services-backend/config"
	"category-services-backend/controllers"
	"category-services-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Service  *controllers.ServiceController
	Health   *controllers.HealthController
}

func SetupRouter(cfg *config.Config, gate *utils.CredentialGate, ctl Controllers) *gin.Engine {
	r := gin.New()

	r.Use(config.PerformanceLogger(cfg.SlowRequestThreshold))
	r.Use(utils.Recovery(cfg.IsProduction()))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins())))

	r.GET("/health", ctl.Health.Health)

	api := r.Group("/api")
	api.POST("/auth/login", ctl.Auth.Login)

	protected := api.Group("")
	protected.Use(utils.AuthMiddleware(gate))
	{
		// Category routes
		protected.POST("/category", ctl.Category.CreateCategory)
		protected.GET("/categories", ctl.Category.GetCategories)
		protected.PUT("/category/:categoryId", ctl.Category.UpdateCategory)
		protected.DELETE("/category/:categoryId", ctl.Category.DeleteCategory)

		// Service routes
		protected.POST("/category/:categoryId/service", ctl.Service.CreateService)
		protected.GET("/category/:categoryId/services", ctl.Service.GetServices)
		protected.PUT("/category/:categoryId/service/:serviceId", ctl.Service.UpdateService)
		protected.DELETE("/category/:categoryId/service/:serviceId", ctl.Service.DeleteService)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "Route not found")
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", config.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", config.RequestIDHeader},
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
