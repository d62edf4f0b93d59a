package usecase

import (
	"context"
	"time"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/recipegen"
)

// mockRecipeRepository provides a configurable mock for RecipeRepository.
type mockRecipeRepository struct {
	listRecipesFn       func(ctx context.Context) ([]model.Recipe, error)
	putRecipeFn         func(ctx context.Context, draft model.DraftRecipe, media []model.DraftMedia, html string) (*model.Recipe, error)
	deleteRecipeFn      func(ctx context.Context, name string) (bool, error)
	getDraftMediaFn     func(ctx context.Context, userID string) ([]model.DraftMedia, error)
	getDraftRecipeFn    func(ctx context.Context, userID string) (*model.DraftRecipe, error)
	putDraftRecipeFn    func(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error)
	deleteDraftRecipeFn func(ctx context.Context, userID string) (bool, error)
}

func (m *mockRecipeRepository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	if m.listRecipesFn != nil {
		return m.listRecipesFn(ctx)
	}
	return nil, nil
}

func (m *mockRecipeRepository) PutRecipe(ctx context.Context, draft model.DraftRecipe, media []model.DraftMedia, html string) (*model.Recipe, error) {
	if m.putRecipeFn != nil {
		return m.putRecipeFn(ctx, draft, media, html)
	}
	return &model.Recipe{Name: draft.Name}, nil
}

func (m *mockRecipeRepository) DeleteRecipe(ctx context.Context, name string) (bool, error) {
	if m.deleteRecipeFn != nil {
		return m.deleteRecipeFn(ctx, name)
	}
	return false, nil
}

func (m *mockRecipeRepository) GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error) {
	if m.getDraftMediaFn != nil {
		return m.getDraftMediaFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipeRepository) GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error) {
	if m.getDraftRecipeFn != nil {
		return m.getDraftRecipeFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipeRepository) PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
	if m.putDraftRecipeFn != nil {
		return m.putDraftRecipeFn(ctx, userID, input)
	}
	return nil, nil
}

func (m *mockRecipeRepository) DeleteDraftRecipe(ctx context.Context, userID string) (bool, error) {
	if m.deleteDraftRecipeFn != nil {
		return m.deleteDraftRecipeFn(ctx, userID)
	}
	return false, nil
}

// mockTaskQueue provides a configurable mock for TaskQueue.
type mockTaskQueue struct {
	publishTaskFn  func(ctx context.Context, task repository.PublishTask) error
	consumeTasksFn func(ctx context.Context, handler func(task repository.PublishTask) error) error
}

func (m *mockTaskQueue) PublishTask(ctx context.Context, task repository.PublishTask) error {
	if m.publishTaskFn != nil {
		return m.publishTaskFn(ctx, task)
	}
	return nil
}

func (m *mockTaskQueue) ConsumeTasks(ctx context.Context, handler func(task repository.PublishTask) error) error {
	if m.consumeTasksFn != nil {
		return m.consumeTasksFn(ctx, handler)
	}
	return nil
}

func (m *mockTaskQueue) Close() error {
	return nil
}

// mockGenerator provides a configurable mock for recipegen.Generator.
type mockGenerator struct {
	generateFn func(ctx context.Context, draft *model.DraftRecipe, media []model.DraftMedia) (*recipegen.Output, error)
}

func (m *mockGenerator) Generate(ctx context.Context, draft *model.DraftRecipe, media []model.DraftMedia) (*recipegen.Output, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, draft, media)
	}
	return &recipegen.Output{
		Summary: map[string]any{"name": draft.Name},
		HTML:    "<summary>{}</summary>",
	}, nil
}

// mockRecipeListCache provides a configurable mock for RecipeListCache.
type mockRecipeListCache struct {
	getFn        func(ctx context.Context) ([]model.Recipe, error)
	setFn        func(ctx context.Context, recipes []model.Recipe, ttl time.Duration) error
	invalidateFn func(ctx context.Context) error
}

func (m *mockRecipeListCache) Get(ctx context.Context) ([]model.Recipe, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, nil
}

func (m *mockRecipeListCache) Set(ctx context.Context, recipes []model.Recipe, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, recipes, ttl)
	}
	return nil
}

func (m *mockRecipeListCache) Invalidate(ctx context.Context) error {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx)
	}
	return nil
}
