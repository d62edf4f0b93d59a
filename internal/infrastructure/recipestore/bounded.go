package recipestore

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
)

// Bounded wraps a RecipeRepository and gates every operation through a
// weighted semaphore, so a surge of concurrent requests cannot pile
// unbounded blocking calls onto the object store. The wrapped core stays
// synchronous; callers block in Acquire until a slot frees up or their
// context is cancelled.
type Bounded struct {
	inner repository.RecipeRepository
	sem   *semaphore.Weighted
}

// Compile-time verification that Bounded implements repository.RecipeRepository.
var _ repository.RecipeRepository = (*Bounded)(nil)

// NewBounded wraps inner with a concurrency limit.
func NewBounded(inner repository.RecipeRepository, limit int64) *Bounded {
	if limit <= 0 {
		limit = 1
	}
	return &Bounded{
		inner: inner,
		sem:   semaphore.NewWeighted(limit),
	}
}

func (b *Bounded) acquire(ctx context.Context) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire store slot: %w", err)
	}
	return nil
}

func (b *Bounded) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.ListRecipes(ctx)
}

func (b *Bounded) PutRecipe(ctx context.Context, draft model.DraftRecipe, media []model.DraftMedia, html string) (*model.Recipe, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.PutRecipe(ctx, draft, media, html)
}

func (b *Bounded) DeleteRecipe(ctx context.Context, name string) (bool, error) {
	if err := b.acquire(ctx); err != nil {
		return false, err
	}
	defer b.sem.Release(1)
	return b.inner.DeleteRecipe(ctx, name)
}

func (b *Bounded) GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.GetDraftMedia(ctx, userID)
}

func (b *Bounded) GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.GetDraftRecipe(ctx, userID)
}

func (b *Bounded) PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
	if err := b.acquire(ctx); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	return b.inner.PutDraftRecipe(ctx, userID, input)
}

func (b *Bounded) DeleteDraftRecipe(ctx context.Context, userID string) (bool, error) {
	if err := b.acquire(ctx); err != nil {
		return false, err
	}
	defer b.sem.Release(1)
	return b.inner.DeleteDraftRecipe(ctx, userID)
}
