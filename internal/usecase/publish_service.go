package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/infrastructure/cache"
	"github.com/wasfeines/wasfeines/internal/infrastructure/metrics"
	"github.com/wasfeines/wasfeines/internal/recipegen"
)

const (
	// DefaultMaxRetries is the default maximum number of retry attempts before a task is dropped.
	DefaultMaxRetries = 3
)

// PublishServiceConfig holds configuration for PublishService.
type PublishServiceConfig struct {
	// MaxRetries is the maximum number of retry attempts before a task is dropped.
	MaxRetries int
}

// DefaultPublishServiceConfig returns the default configuration.
func DefaultPublishServiceConfig() PublishServiceConfig {
	return PublishServiceConfig{
		MaxRetries: DefaultMaxRetries,
	}
}

// PublishService defines the interface for worker-side recipe publishing.
type PublishService interface {
	// ProcessTask handles a publish task from the message queue.
	// Returns nil on success or permanent failure (max retries exceeded).
	// Returns error for transient failures that should trigger a retry.
	ProcessTask(ctx context.Context, task repository.PublishTask) error
}

type publishService struct {
	repo      repository.RecipeRepository
	generator recipegen.Generator
	listCache cache.RecipeListCache // optional, may be nil

	maxRetries int
}

// NewPublishService creates a new PublishService instance.
// listCache may be nil when the deployment runs without Redis.
func NewPublishService(
	repo repository.RecipeRepository,
	generator recipegen.Generator,
	listCache cache.RecipeListCache,
	cfg PublishServiceConfig,
) PublishService {
	return &publishService{
		repo:       repo,
		generator:  generator,
		listCache:  listCache,
		maxRetries: cfg.MaxRetries,
	}
}

// summaryName pulls the recipe name out of a generated summary map.
func summaryName(summary map[string]any) string {
	name, _ := summary["name"].(string)
	return name
}

// ProcessTask turns the user's draft into a published recipe.
// It loads the draft and its uploaded media, generates the recipe document,
// and writes the published object set. The draft itself is left in place so
// the user can keep iterating on it.
func (s *publishService) ProcessTask(ctx context.Context, task repository.PublishTask) error {
	// Max retries exceeded - drop the task and ack the message. The draft
	// is untouched and the user can resubmit.
	if task.RetryCount >= s.maxRetries {
		metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusDropped).Inc()
		slog.Error("dropping publish task after max retries",
			"user_id", task.UserID,
			"request_id", task.RequestID,
			"retry_count", task.RetryCount,
		)
		return nil
	}

	draft, err := s.repo.GetDraftRecipe(ctx, task.UserID)
	if err != nil {
		metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusRetry).Inc()
		return fmt.Errorf("load draft: %w", err)
	}
	if draft == nil {
		// The draft was deleted between submission and pickup. Nothing to
		// publish, ack the message.
		slog.Warn("publish task has no draft, skipping",
			"user_id", task.UserID,
			"request_id", task.RequestID,
		)
		return nil
	}

	slots, err := s.repo.GetDraftMedia(ctx, task.UserID)
	if err != nil {
		metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusRetry).Inc()
		return fmt.Errorf("load draft media: %w", err)
	}
	var media []model.DraftMedia
	for _, m := range slots {
		if m.Exists {
			media = append(media, m)
		}
	}

	out, err := s.generator.Generate(ctx, draft, media)
	if err != nil {
		metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusRetry).Inc()
		return fmt.Errorf("generate recipe: %w", err)
	}

	// The generator may produce a better name than the draft carries, and
	// drafts may carry none at all. Generators that only return a document
	// still embed the summary in its <summary> head, so fall back to
	// parsing it out.
	name := summaryName(out.Summary)
	if name == "" {
		if summary, err := recipegen.ExtractSummary(out.HTML); err == nil {
			name = summaryName(summary)
		}
	}
	if name != "" {
		draft.Name = name
	}

	recipe, err := s.repo.PutRecipe(ctx, *draft, media, out.HTML)
	if err != nil {
		metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusRetry).Inc()
		return fmt.Errorf("store recipe: %w", err)
	}

	if s.listCache != nil {
		if err := s.listCache.Invalidate(ctx); err != nil {
			// Stale listings age out with the TTL, no need to retry
			slog.Warn("failed to invalidate recipe list cache after publish",
				"recipe", recipe.Name,
				"error", err,
			)
		}
	}

	metrics.PublishTasksTotal.WithLabelValues(metrics.PublishStatusSuccess).Inc()
	slog.Info("published recipe",
		"recipe", recipe.Name,
		"user_id", task.UserID,
		"request_id", task.RequestID,
		"media_count", len(media),
	)

	return nil
}
