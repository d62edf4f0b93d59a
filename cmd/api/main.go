package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wasfeines/wasfeines/internal/api/handler"
	"github.com/wasfeines/wasfeines/internal/api/middleware"
	"github.com/wasfeines/wasfeines/internal/config"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/infrastructure/cache"
	"github.com/wasfeines/wasfeines/internal/infrastructure/queue"
	"github.com/wasfeines/wasfeines/internal/infrastructure/recipestore"
	"github.com/wasfeines/wasfeines/internal/infrastructure/storage"
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

	var repo repository.RecipeRepository = recipestore.New(store, recipestore.Config{
		BasePath:    cfg.S3.BasePath,
		DraftFolder: cfg.Draft.Folder,
		MaxSlots:    cfg.Draft.MaxSlots,
	})
	repo = recipestore.NewBounded(repo, cfg.Server.MaxConcurrentRequests)

	svc := usecase.NewRecipeService(repo, queueClient)

	// The listing cache is optional: without Redis every listing hits the
	// object store directly.
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

		svc = usecase.NewCachedRecipeService(
			svc,
			cache.NewRedisRecipeListCache(redisClient),
			usecase.CachedRecipeServiceConfig{CacheTTL: cfg.Redis.CacheTTL},
		)
	}

	r := setupRouter(logger, svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, svc usecase.RecipeService) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	recipes := handler.NewRecipeHandler(svc)
	drafts := handler.NewDraftHandler(svc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth)

		r.Get("/recipes", recipes.List)
		r.Post("/recipes", recipes.Publish)
		r.Delete("/recipes/{name}", recipes.Delete)

		r.Get("/draftrecipe", drafts.Get)
		r.Post("/draftrecipe", drafts.Put)
		r.Delete("/draftrecipe", drafts.Delete)
	})

	return r
}
