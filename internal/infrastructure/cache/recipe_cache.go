package cache

import (
	"context"
	"time"

	"github.com/wasfeines/wasfeines/internal/domain/model"
)

// RecipeListCache defines the interface for caching the assembled recipe
// listing. Implementations should handle serialization transparently.
//
// Cached entries embed presigned URLs, so the TTL passed to Set must stay
// well below the presign expiry or clients will receive dead links.
type RecipeListCache interface {
	// Get retrieves the cached recipe list.
	// Returns nil, nil if no listing is cached (cache miss).
	Get(ctx context.Context) ([]model.Recipe, error)

	// Set stores the recipe list with the specified TTL.
	Set(ctx context.Context, recipes []model.Recipe, ttl time.Duration) error

	// Invalidate drops the cached listing.
	// Returns nil if nothing was cached.
	Invalidate(ctx context.Context) error
}
