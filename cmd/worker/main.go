package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/wasfeines/wasfeines/internal/config"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/infrastructure/cache"
	"github.com/wasfeines/wasfeines/internal/infrastructure/queue"
	"github.com/wasfeines/wasfeines/internal/infrastructure/recipestore"
	"github.com/wasfeines/wasfeines/internal/infrastructure/storage"
	"github.com/wasfeines/wasfeines/internal/recipegen"
	"github.com/wasfeines/wasfeines/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.S3.Endpoint,
		PublicEndpoint: cfg.S3.PublicEndpoint,
		AccessKey:      cfg.S3.AccessKey,
		SecretKey:      cfg.S3.SecretKey,
		Bucket:         cfg.S3.Bucket,
		UseSSL:         cfg.S3.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to object store: %w", err)
	}
	logger.Info("connected to object store", slog.String("bucket", cfg.S3.Bucket))

	store := storage.NewInstrumented(storageClient)

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	var listCache cache.RecipeListCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis")
		listCache = cache.NewRedisRecipeListCache(redisClient)
	}

	repo := recipestore.New(store, recipestore.Config{
		BasePath:    cfg.S3.BasePath,
		DraftFolder: cfg.Draft.Folder,
		MaxSlots:    cfg.Draft.MaxSlots,
	})

	generator := recipegen.NewTemplateGenerator(recipegen.DefaultTemplateConfig())

	publishSvc := usecase.NewPublishService(repo, generator, listCache, usecase.PublishServiceConfig{
		MaxRetries: cfg.Worker.MaxRetries,
	})

	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight tasks
	var wg sync.WaitGroup

	// Start consuming messages in a goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting worker, consuming publish tasks")
		err := queueClient.ConsumeTasks(ctx, func(task repository.PublishTask) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("processing task",
				slog.String("user_id", task.UserID),
				slog.String("request_id", task.RequestID),
				slog.Int("retry_count", task.RetryCount),
			)

			if err := publishSvc.ProcessTask(ctx, task); err != nil {
				logger.Error("task processing failed",
					slog.String("user_id", task.UserID),
					slog.String("request_id", task.RequestID),
					slog.Int("retry_count", task.RetryCount),
					slog.String("error", err.Error()),
				)
				return err
			}

			logger.Info("task completed successfully",
				slog.String("user_id", task.UserID),
				slog.String("request_id", task.RequestID),
			)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// Cancel the main context to stop consuming new messages
	cancel()

	// Wait for in-flight tasks to complete (or timeout)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight tasks completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some tasks may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}
