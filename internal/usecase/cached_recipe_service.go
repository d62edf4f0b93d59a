package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/infrastructure/cache"
	"github.com/wasfeines/wasfeines/internal/infrastructure/metrics"
)

// listFlightKey coalesces all concurrent ListRecipes calls, which share a
// single cache entry.
const listFlightKey = "recipes:list"

// CachedRecipeServiceConfig holds configuration for CachedRecipeService.
type CachedRecipeServiceConfig struct {
	// CacheTTL is the TTL for the cached recipe listing. Must stay below
	// the presign expiry of the embedded links.
	CacheTTL time.Duration
}

// DefaultCachedRecipeServiceConfig returns the default configuration.
func DefaultCachedRecipeServiceConfig() CachedRecipeServiceConfig {
	return CachedRecipeServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedRecipeService wraps RecipeService with caching of the assembled
// recipe listing. It implements the decorator pattern to add caching
// without modifying the underlying service.
type cachedRecipeService struct {
	delegate RecipeService
	cache    cache.RecipeListCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedRecipeService creates a new CachedRecipeService wrapping the
// provided RecipeService.
func NewCachedRecipeService(
	delegate RecipeService,
	listCache cache.RecipeListCache,
	cfg CachedRecipeServiceConfig,
) RecipeService {
	return &cachedRecipeService{
		delegate: delegate,
		cache:    listCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// ListRecipes retrieves the recipe listing with caching.
// Uses singleflight to prevent a stampede of store listings on concurrent
// requests after the cache expires.
func (s *cachedRecipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	result, err, shared := s.sfGroup.Do(listFlightKey, func() (any, error) {
		return s.listWithCache(ctx)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.([]model.Recipe), nil
}

// listWithCache implements the cache-aside pattern.
func (s *cachedRecipeService) listWithCache(ctx context.Context) ([]model.Recipe, error) {
	recipes, err := s.cache.Get(ctx)
	if err != nil {
		// Log cache error but continue to the store
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		slog.Warn("cache get failed, falling back to store", "error", err)
	}

	if recipes != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
		return recipes, nil
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()

	recipes, err = s.delegate.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, recipes, s.cacheTTL); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		slog.Warn("failed to cache recipe list", "error", err)
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	}

	return recipes, nil
}

// invalidate drops the cached listing, logging but not propagating failures.
func (s *cachedRecipeService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		slog.Warn("failed to invalidate recipe list cache", "error", err)
		return
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
}

// SubmitPublish delegates to the underlying service. The cache stays valid
// until the worker actually writes the recipe.
func (s *cachedRecipeService) SubmitPublish(ctx context.Context, userID string) (*PublishReceipt, error) {
	return s.delegate.SubmitPublish(ctx, userID)
}

// DeleteRecipe invalidates the cached listing after a successful delete.
func (s *cachedRecipeService) DeleteRecipe(ctx context.Context, name string) (bool, error) {
	deleted, err := s.delegate.DeleteRecipe(ctx, name)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx)
	}
	return deleted, nil
}

// GetDraftRecipe delegates to the underlying service. Drafts are per-user
// and cheap to read, so they are not cached.
func (s *cachedRecipeService) GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error) {
	return s.delegate.GetDraftRecipe(ctx, userID)
}

// GetDraftMedia delegates to the underlying service. Slot URLs are signed
// per request and must not be cached.
func (s *cachedRecipeService) GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error) {
	return s.delegate.GetDraftMedia(ctx, userID)
}

// PutDraftRecipe delegates to the underlying service.
func (s *cachedRecipeService) PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
	return s.delegate.PutDraftRecipe(ctx, userID, input)
}

// DeleteDraftRecipe delegates to the underlying service.
func (s *cachedRecipeService) DeleteDraftRecipe(ctx context.Context, userID string) (bool, error) {
	return s.delegate.DeleteDraftRecipe(ctx, userID)
}
