package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wasfeines/wasfeines/internal/domain/model"
)

const (
	// recipeListKey is the Redis key holding the assembled recipe listing.
	// The listing is cached as one document because it is always read and
	// rebuilt as a whole.
	recipeListKey = "recipes:list"
)

// mediaJSON is the JSON representation of a recipe media item for caching.
type mediaJSON struct {
	Name       string `json:"name"`
	ContentURL string `json:"content_url"`
}

// recipeJSON is the JSON representation of a Recipe for caching.
// Using explicit structs avoids coupling to the domain model's JSON tags.
type recipeJSON struct {
	Name       string         `json:"name"`
	ContentURL string         `json:"content_url"`
	Media      []mediaJSON    `json:"media,omitempty"`
	Summary    map[string]any `json:"summary,omitempty"`
}

// RedisRecipeListCache implements RecipeListCache using Redis as the
// backing store.
type RedisRecipeListCache struct {
	client *redis.Client
}

// Compile-time verification that RedisRecipeListCache implements RecipeListCache.
var _ RecipeListCache = (*RedisRecipeListCache)(nil)

// NewRedisRecipeListCache creates a new Redis-backed recipe list cache.
func NewRedisRecipeListCache(client *redis.Client) *RedisRecipeListCache {
	return &RedisRecipeListCache{
		client: client,
	}
}

// Get retrieves the cached recipe list from Redis.
// Returns nil, nil on cache miss.
func (c *RedisRecipeListCache) Get(ctx context.Context) ([]model.Recipe, error) {
	data, err := c.client.Get(ctx, recipeListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	recipes, err := c.deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize recipe list: %w", err)
	}

	return recipes, nil
}

// Set stores the recipe list in Redis with the specified TTL.
func (c *RedisRecipeListCache) Set(ctx context.Context, recipes []model.Recipe, ttl time.Duration) error {
	data, err := c.serialize(recipes)
	if err != nil {
		return fmt.Errorf("serialize recipe list: %w", err)
	}

	if err := c.client.Set(ctx, recipeListKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Invalidate drops the cached listing.
func (c *RedisRecipeListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, recipeListKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

// serialize converts the recipe list to JSON bytes.
func (c *RedisRecipeListCache) serialize(recipes []model.Recipe) ([]byte, error) {
	out := make([]recipeJSON, 0, len(recipes))
	for _, r := range recipes {
		entry := recipeJSON{
			Name:       r.Name,
			ContentURL: r.ContentURL,
			Summary:    r.Summary,
		}
		for _, m := range r.Media {
			entry.Media = append(entry.Media, mediaJSON{
				Name:       m.Name,
				ContentURL: m.ContentURL,
			})
		}
		out = append(out, entry)
	}
	return json.Marshal(out)
}

// deserialize converts JSON bytes back to the recipe list.
func (c *RedisRecipeListCache) deserialize(data []byte) ([]model.Recipe, error) {
	var entries []recipeJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, 0, len(entries))
	for _, e := range entries {
		recipe := model.Recipe{
			Name:       e.Name,
			ContentURL: e.ContentURL,
			Summary:    e.Summary,
		}
		for _, m := range e.Media {
			recipe.Media = append(recipe.Media, model.Media{
				Name:       m.Name,
				ContentURL: m.ContentURL,
			})
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
