package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"category-services-backend/config"
	"category-services-backend/controllers"
	"category-services-backend/routes"
	"category-services-backend/services"
	"category-services-backend/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.ConfigureLogging(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	if cfg.DBAutoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	monitor := services.NewHealthMonitor(db, cfg.HealthCheckSchedule)
	if err := monitor.Start(); err != nil {
		return err
	}
	defer monitor.Stop()

	router := newRouter(cfg, db, monitor)
	printRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server down")
	return nil
}

func newRouter(cfg *config.Config, db *gorm.DB, monitor *services.HealthMonitor) *gin.Engine {
	gate := utils.NewCredentialGate([]byte(cfg.JWTSecret), cfg.JWTExpiresIn)
	admin := utils.AdminAuthenticator{
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}

	return routes.SetupRouter(cfg, gate, routes.Controllers{
		Auth:     controllers.NewAuthController(gate, admin),
		Category: controllers.NewCategoryController(services.NewCategoryStore(db)),
		Service:  controllers.NewServiceController(services.NewServiceManager(db)),
		Health:   controllers.NewHealthController(monitor),
	})
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debugf("%-6s %s", route.Method, route.Path)
	}
}
