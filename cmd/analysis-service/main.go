package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-news-insight/internal/analyzer/bootstrap"
	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/delivery/consumer"
	"golang-news-insight/internal/analyzer/delivery/scheduler"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/internal/analyzer/strategy"
	"golang-news-insight/pkg/common"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/postgres"
	"golang-news-insight/pkg/redis"
	"golang-news-insight/pkg/telegram"

	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analysis service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	appLogger.Info("Starting Analysis Service", logger.StringField("name", cfg.App.Name))

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

	if err := redisClient.EnsureConsumerGroup(ctx, common.RedisStreamArticleAnalyze, common.RedisStreamGroup); err != nil {
		appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
	}

	// Initialize the analysis pipeline
	dictionaryCache := repository.NewRedisDictionaryCacheRepository(redisClient.Client, cfg.Dictionary.CacheTTL, appLogger)
	core, err := bootstrap.NewCore(ctx, cfg, appLogger, dictionaryCache)
	if err != nil {
		appLogger.Fatal("Failed to initialize analysis pipeline", logger.ErrorField(err))
	}

	notifier := telegram.NewNoopNotifier()
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories and services
	articleRepo := repository.NewNewsArticleRepository(db.DB)
	articleSvc := service.NewArticleService(core.Pipeline, articleRepo, notifier, cfg.Telegram.MinAbsScore, appLogger)

	// Initialize strategies
	dictionaryRefresh := strategy.NewDictionaryRefreshStrategy(core.DictionaryService, appLogger)
	newsScraper := strategy.NewNewsScraperStrategy(
		cfg,
		appLogger,
		repository.NewArticleSourceRepository(cfg, appLogger),
		articleRepo,
		repository.NewRedisArticleQueueRepository(redisClient.Client, cfg.Redis.StreamMaxLen, appLogger),
	)

	jobScheduler := scheduler.NewJobScheduler(appLogger, cfg.Consumer.Timeout, repository.NewJobExecutionRepository(db.DB))
	if err := jobScheduler.Register(ctx, cfg.Dictionary.RefreshCron, dictionaryRefresh); err != nil {
		appLogger.Fatal("Failed to schedule dictionary refresh", logger.ErrorField(err))
	}
	if err := jobScheduler.Register(ctx, cfg.Scraper.Cron, newsScraper); err != nil {
		appLogger.Fatal("Failed to schedule news scraper", logger.ErrorField(err))
	}

	// The dictionary must be loaded before the first article is analyzed.
	if err := jobScheduler.RunNow(ctx, strategy.JobTypeDictionaryRefresh); err != nil {
		appLogger.Fatal("Failed to load ticker dictionary", logger.ErrorField(err))
	}
	go jobScheduler.Start(ctx)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, func(worker int) consumer.TaskProcessor {
		return service.NewArticleStreamService(redisClient.Client, articleSvc, consumer.ConsumerName(worker), cfg.Consumer.Block, appLogger)
	}, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Analysis service started. Waiting for articles...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down analysis service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Analysis service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "analysis-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analysis-service CLI: %s\n", err)
		os.Exit(1)
	}
}
