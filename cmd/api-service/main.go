package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-news-insight/internal/analyzer/bootstrap"
	"golang-news-insight/internal/analyzer/config"
	delivery "golang-news-insight/internal/analyzer/delivery/http"
	"golang-news-insight/internal/analyzer/delivery/scheduler"
	_ "golang-news-insight/internal/analyzer/docs"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/internal/analyzer/strategy"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/postgres"
	"golang-news-insight/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.StringField("name", cfg.App.Name))

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize the analysis pipeline
	dictionaryCache := repository.NewRedisDictionaryCacheRepository(redisClient.Client, cfg.Dictionary.CacheTTL, appLogger)
	core, err := bootstrap.NewCore(ctx, cfg, appLogger, dictionaryCache)
	if err != nil {
		appLogger.Fatal("Failed to initialize analysis pipeline", logger.ErrorField(err))
	}

	// Keep the dictionary fresh for lookups and trend queries
	jobScheduler := scheduler.NewJobScheduler(appLogger, time.Minute, nil)
	if err := jobScheduler.Register(ctx, cfg.Dictionary.RefreshCron, strategy.NewDictionaryRefreshStrategy(core.DictionaryService, appLogger)); err != nil {
		appLogger.Fatal("Failed to schedule dictionary refresh", logger.ErrorField(err))
	}
	if err := jobScheduler.RunNow(ctx, strategy.JobTypeDictionaryRefresh); err != nil {
		appLogger.Fatal("Failed to load ticker dictionary", logger.ErrorField(err))
	}
	go jobScheduler.Start(ctx)

	// Initialize services
	articleRepo := repository.NewNewsArticleRepository(db.DB)
	articleSvc := service.NewArticleService(core.Pipeline, articleRepo, nil, 0, appLogger)
	trendSvc := service.NewSentimentTrendService(articleRepo, core.DictionaryStore, appLogger)
	jobExecutionSvc := service.NewJobExecutionService(repository.NewJobExecutionRepository(db.DB), appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	analysisHandler := delivery.NewAnalysisHandler(core.Summarizer, core.Validator, core.Scorer, core.Pipeline, cfg.Analyzer.SummaryTopN, appLogger)
	analysisHandler.RegisterRoutes(apiV1.Group("/analysis"))

	sentimentHandler := delivery.NewSentimentHandler(trendSvc, appLogger)
	sentimentHandler.RegisterRoutes(apiV1.Group("/sentiments"))

	newsHandler := delivery.NewNewsHandler(articleSvc, appLogger)
	newsHandler.RegisterRoutes(apiV1.Group("/news"))

	tickerHandler := delivery.NewTickerHandler(core.DictionaryStore)
	tickerHandler.RegisterRoutes(apiV1.Group("/tickers"))

	jobExecutionHandler := delivery.NewJobExecutionHandler(jobExecutionSvc, appLogger)
	jobExecutionHandler.RegisterRoutes(apiV1.Group("/jobs"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title News Insight API
// @version 1.0
// @description Financial news summarization, ticker resolution and sentiment insights.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
