package app

import (
	"fmt"
	"net/http"

	"github.com/Yashika2244-hub/fraud-detection-api/configs"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/handlers"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/repositories"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/services"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/database"
	middleware "github.com/Yashika2244-hub/fraud-detection-api/pkg/middlewares"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server.
// It reads configuration from environment variables via configs.Load.
func NewApp(logger *zap.Logger) (*http.Server, error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, err
	}

	// Connection provider: credentials live in config, never in the core.
	// Each fetch acquires and releases its own scoped connection.
	provider := database.NewProvider(logger, database.Config{
		Host:           cfg.MySQLHost,
		Port:           cfg.MySQLPort,
		User:           cfg.MySQLUser,
		Password:       cfg.MySQLPassword,
		Database:       cfg.MySQLDatabase,
		ConnectTimeout: cfg.ConnectTimeout(),
	})

	srv := NewServer(logger, cfg, repositories.NewDatasetRepository(logger, provider))
	return srv, nil
}

// NewServer builds the HTTP server around an already-constructed repository.
// Split from NewApp so tests can inject a stubbed source.
func NewServer(logger *zap.Logger, cfg *configs.Config, repo repositories.DatasetRepository) *http.Server {
	// Setup dependencies
	baseHandler := handlers.NewBaseHandler(logger)
	dashboardHandler := handlers.NewDashboardHandler(logger, services.NewDashboardService(logger, repo))
	analyticsHandler := handlers.NewAnalyticsHandler(logger, services.NewAnalyticsService(logger, repo))
	catalogHandler := handlers.NewCatalogHandler(logger, services.NewCatalogService(logger, repo), cfg.QueryRowLimit)
	reportHandler := handlers.NewReportHandler(logger, services.NewReportService(logger, repo))
	exportHandler := handlers.NewExportHandler(logger, services.NewExportService(logger, cfg.ExportDir))

	// Router
	r := gin.Default()

	api := r.Group("/api/v1")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())
	api.Use(middleware.RateLimit(cfg.RateLimitRPS))

	dashboardHandler.RegisterRoutes(api)
	analyticsHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	exportHandler.RegisterRoutes(api)
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	return &http.Server{Addr: addr, Handler: r}
}
