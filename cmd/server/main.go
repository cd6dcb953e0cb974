package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/gitaudit/internal/handlers"
	"github.com/alimgiray/gitaudit/internal/middleware"
	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/internal/repositories"
	"github.com/alimgiray/gitaudit/internal/services"
	"github.com/alimgiray/gitaudit/internal/workers"
	"github.com/alimgiray/gitaudit/pkg/config"
	"github.com/alimgiray/gitaudit/pkg/database"
	"github.com/alimgiray/gitaudit/pkg/logger"
	"github.com/alimgiray/gitaudit/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	scoring, err := config.LoadScoringFile(cfg.Audit.ScoringFile)
	if err != nil {
		logger.Fatalf("Failed to load scoring file: %v", err)
	}
	if cfg.Audit.FixedThresholds {
		scoring.Settings.ThresholdMode = models.ThresholdModeFixed
	}

	// The SQLite sink is optional
	var evaluationRepo *repositories.EvaluationRepository
	if cfg.Database.Path != "" {
		if err := database.Init(cfg.Database.Path); err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.Close()
		evaluationRepo = repositories.NewEvaluationRepository(database.DB)
	}

	// Initialize dependencies
	runner := services.NewExecGitRunner()
	githubService := services.NewGitHubRepositoryService(cfg.GitHub.Token)
	cloneService := services.NewCloneService(runner, githubService, cfg.Audit.CloneDir)
	executor := services.NewAuditExecutor(cloneService, runner, scoring.Settings, scoring.Aliases)
	exportService := services.NewExportService(evaluationRepo)
	jobStore := repositories.NewJobStore()

	var sink workers.ResultSink
	if evaluationRepo != nil {
		sink = exportService
	}
	workerManager := workers.NewWorkerManager(jobStore, executor, sink, time.Duration(cfg.Audit.PollInterval)*time.Second)
	auditMetrics := metrics.New()
	workerManager.SetStats(auditMetrics)

	router := setupRouter(cfg, jobStore, exportService, evaluationRepo, workerManager, auditMetrics)

	// Start workers
	if err := workerManager.StartAll(cfg.Audit.Workers); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	_ = workerManager.StopAll()
	logger.Info("Server stopped")
}

func setupRouter(cfg *config.Config, jobStore *repositories.JobStore, exportService *services.ExportService,
	evaluationRepo *repositories.EvaluationRepository, workerManager *workers.WorkerManager, auditMetrics *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Server.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost},
			AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Location", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	healthHandler := handlers.NewHealthHandler(workerManager.GetWorkerStatus)
	auditHandler := handlers.NewAuditHandler(jobStore, exportService, evaluationRepo)
	notFoundHandler := handlers.NewNotFoundHandler()

	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(auditMetrics.Handler()))

	api := router.Group("/api")
	api.Use(middleware.TokenRequired(cfg.Server.APIToken))
	auditHandler.Register(api, middleware.NewIPRateLimiter(cfg.Server.AuditsPerMinute).Middleware())

	router.NoRoute(notFoundHandler.NotFound)
	return router
}
