// @title           Mobile Generator Front API
// @version         1.0.0
// @description     HTTP front for the mobile-generator service. Accepts mockup images and text prompts, mediates analysis and generation, and streams packaged Flutter/Angular projects back as downloads.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SW2PDEPLOY/front/internal/config"
	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/handlers"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Image codec shared by every request
	codec := imaging.NewCodec(cfg.MaxImageWidth, cfg.JPEGQuality)

	// Generation service client; handlers bind it to the caller's session
	// per request
	generatorClient := generator.NewClient(cfg.GeneratorAPIBaseURL, nil)

	// Initialize handlers
	mockupsHandler := handlers.NewMockupsHandler(codec, generatorClient)
	promptsHandler := handlers.NewPromptsHandler(generatorClient)
	appsHandler := handlers.NewAppsHandler(generatorClient)

	// Metrics
	registry := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Setup router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(promMiddleware.Handler())

	// Uploads are capped well below this by the validator; the form itself
	// may carry a little overhead
	router.MaxMultipartMemory = 32 << 20

	// Health check and metrics (no auth)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Mockup image workflows
	api.POST("/mockups/analyze", mockupsHandler.Analyze)
	api.POST("/mockups/generate", mockupsHandler.Generate)

	// Prompt workflow
	api.POST("/prompts/generate", promptsHandler.Generate)

	// App records
	api.GET("/apps", appsHandler.List)
	api.GET("/apps/:app_id", appsHandler.Get)
	api.PATCH("/apps/:app_id", appsHandler.Update)
	api.DELETE("/apps/:app_id", appsHandler.Delete)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
