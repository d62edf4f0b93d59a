package repository

import (
	"context"

	"github.com/wasfeines/wasfeines/internal/domain/model"
)

// RecipeRepository is the public contract over the object store: recipe CRUD,
// per-user draft CRUD and draft media slot listing. Operations are blocking
// I/O against the store; no implementation retains cross-request state, and
// concurrent writers for the same user or recipe name race last-write-wins.
type RecipeRepository interface {
	// ListRecipes assembles every published recipe from one listing snapshot.
	// Returns an empty slice when nothing is published.
	ListRecipes(ctx context.Context) ([]model.Recipe, error)

	// PutRecipe publishes a recipe: writes the HTML body, copies each media
	// item flagged Exists from its draft location into the recipe's media
	// prefix, writes the JSON summary from the draft, then re-assembles and
	// returns the canonical stored form. Partial failure after the HTML
	// write is not rolled back.
	PutRecipe(ctx context.Context, draft model.DraftRecipe, media []model.DraftMedia, html string) (*model.Recipe, error)

	// DeleteRecipe removes a published recipe. Returns false without
	// deleting anything else if the HTML object is absent or its delete
	// fails; on success the JSON sidecar and every object under the media
	// prefix are removed best-effort.
	DeleteRecipe(ctx context.Context, name string) (bool, error)

	// GetDraftMedia returns the user's media slots: every uploaded draft
	// asset plus enough pre-allocated empty slots to guarantee the
	// configured number of upload targets.
	GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error)

	// GetDraftRecipe reads the user's draft document.
	// Returns nil, nil when no draft exists.
	GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error)

	// PutDraftRecipe converts the input into the canonical draft document
	// and fully replaces the user's stored draft.
	PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error)

	// DeleteDraftRecipe removes the user's draft document.
	// Returns false when no draft existed.
	DeleteDraftRecipe(ctx context.Context, userID string) (bool, error)
}
