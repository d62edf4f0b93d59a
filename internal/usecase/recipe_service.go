package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/infrastructure/metrics"
)

var (
	// ErrNoDraft is returned when attempting to publish without a saved draft.
	ErrNoDraft = errors.New("no draft recipe to publish")
)

// PublishReceipt contains the result of submitting a draft for publishing.
type PublishReceipt struct {
	// RequestID identifies the enqueued task in logs.
	RequestID string
}

// RecipeService defines the interface for recipe business logic operations.
type RecipeService interface {
	// ListRecipes returns all published recipes with fresh content links.
	ListRecipes(ctx context.Context) ([]model.Recipe, error)

	// SubmitPublish enqueues the user's draft for async publishing.
	// Returns ErrNoDraft if the user has no saved draft.
	SubmitPublish(ctx context.Context, userID string) (*PublishReceipt, error)

	// DeleteRecipe removes a published recipe and all of its objects.
	// Returns false if no such recipe exists.
	DeleteRecipe(ctx context.Context, name string) (bool, error)

	// GetDraftRecipe returns the user's draft, or nil if none is saved.
	GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error)

	// GetDraftMedia returns the user's media slots, uploaded ones first.
	GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error)

	// PutDraftRecipe replaces the user's draft with the given input.
	PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error)

	// DeleteDraftRecipe removes the user's draft document.
	// Returns false if no draft was saved.
	DeleteDraftRecipe(ctx context.Context, userID string) (bool, error)
}

type recipeService struct {
	repo  repository.RecipeRepository
	queue repository.TaskQueue

	newRequestID func() string
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(repo repository.RecipeRepository, queue repository.TaskQueue) RecipeService {
	return &recipeService{
		repo:         repo,
		queue:        queue,
		newRequestID: uuid.NewString,
	}
}

// ListRecipes returns all published recipes.
func (s *recipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

// SubmitPublish enqueues a publish task for the user's draft.
// The draft must exist at submission time; the worker re-reads it when the
// task is picked up, so edits made in between are included.
func (s *recipeService) SubmitPublish(ctx context.Context, userID string) (*PublishReceipt, error) {
	if userID == "" {
		return nil, model.ErrEmptyUserID
	}

	draft, err := s.repo.GetDraftRecipe(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if draft == nil {
		return nil, ErrNoDraft
	}

	task := repository.PublishTask{
		UserID:    userID,
		RequestID: s.newRequestID(),
	}

	if err := s.queue.PublishTask(ctx, task); err != nil {
		metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusEnqueueFailed).Inc()
		return nil, fmt.Errorf("enqueue publish task: %w", err)
	}
	metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusEnqueued).Inc()

	return &PublishReceipt{RequestID: task.RequestID}, nil
}

// DeleteRecipe removes a published recipe.
func (s *recipeService) DeleteRecipe(ctx context.Context, name string) (bool, error) {
	return s.repo.DeleteRecipe(ctx, name)
}

// GetDraftRecipe returns the user's draft.
func (s *recipeService) GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error) {
	return s.repo.GetDraftRecipe(ctx, userID)
}

// GetDraftMedia returns the user's media slots.
func (s *recipeService) GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error) {
	return s.repo.GetDraftMedia(ctx, userID)
}

// PutDraftRecipe replaces the user's draft.
func (s *recipeService) PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
	return s.repo.PutDraftRecipe(ctx, userID, input)
}

// DeleteDraftRecipe removes the user's draft document.
func (s *recipeService) DeleteDraftRecipe(ctx context.Context, userID string) (bool, error) {
	return s.repo.DeleteDraftRecipe(ctx, userID)
}
