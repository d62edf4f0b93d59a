// Package recipestore implements the recipe repository on top of a flat
// object store. Recipes and drafts are modeled purely through key prefixes;
// the store is the sole source of truth and no cross-request state is kept.
package recipestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/keys"
)

// presignTTL is the fixed expiry policy for every issued URL. URLs are cheap
// to reissue on the next read, so no other TTL exists.
const presignTTL = time.Hour

var (
	// ErrEmptyRecipeName is returned when publishing a draft without a name.
	ErrEmptyRecipeName = errors.New("recipe name cannot be empty")
)

// Config holds configuration for the repository.
type Config struct {
	// BasePath is the key prefix under which all recipe and draft objects live.
	BasePath string
	// DraftFolder is the folder under BasePath holding draft documents and media.
	DraftFolder string
	// MaxSlots is the guaranteed number of usable draft media upload targets.
	MaxSlots int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BasePath:    "recipes",
		DraftFolder: "drafts",
		MaxSlots:    5,
	}
}

// Repository implements repository.RecipeRepository over an ObjectStore.
type Repository struct {
	store    repository.ObjectStore
	scheme   keys.Scheme
	maxSlots int

	// newID generates unique ids for empty media slots. Injected so tests
	// can assert on deterministic keys.
	newID func() string
	// now stamps server-side rating timestamps.
	now func() time.Time
}

// Compile-time verification that Repository implements repository.RecipeRepository.
var _ repository.RecipeRepository = (*Repository)(nil)

// Option customizes a Repository.
type Option func(*Repository)

// WithIDGenerator replaces the slot id generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// WithClock replaces the clock used for rating timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// New creates a Repository over store.
func New(store repository.ObjectStore, cfg Config, opts ...Option) *Repository {
	if cfg.MaxSlots <= 0 {
		cfg.MaxSlots = DefaultConfig().MaxSlots
	}
	r := &Repository{
		store:    store,
		scheme:   keys.NewScheme(cfg.BasePath, cfg.DraftFolder),
		maxSlots: cfg.MaxSlots,
		newID:    defaultSlotID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultSlotID generates a slot id. The .jpg suffix keeps the key inside
// the media extension set once it is copied into a published recipe's folder.
func defaultSlotID() string {
	return uuid.NewString() + ".jpg"
}

// listPrefix returns the prefix for a full base-path listing snapshot.
func (r *Repository) listPrefix() string {
	if r.scheme.Base() == "" {
		return ""
	}
	return r.scheme.Base() + "/"
}

// ListRecipes assembles every published recipe from one listing snapshot.
// A single list call is reused for every recipe found in the snapshot.
func (r *Repository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	snapshot, err := r.store.List(ctx, r.listPrefix())
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	idx := newSnapshotIndex(r.scheme, snapshot)

	recipes := make([]model.Recipe, 0, len(idx.htmlKeys))
	for _, htmlKey := range idx.htmlKeys {
		recipe, err := r.assemble(ctx, htmlKey, idx)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// PutRecipe publishes a recipe. The HTML body write is the commit point:
// its failure aborts the operation, while later media copy and summary
// write failures are logged and not rolled back, so the returned aggregate
// may be missing media.
func (r *Repository) PutRecipe(ctx context.Context, draft model.DraftRecipe, media []model.DraftMedia, html string) (*model.Recipe, error) {
	if draft.Name == "" {
		return nil, ErrEmptyRecipeName
	}

	htmlKey := r.scheme.RecipeHTML(draft.Name)
	if err := r.store.Put(ctx, htmlKey, []byte(html), "text/html"); err != nil {
		return nil, fmt.Errorf("write recipe body: %w", err)
	}

	for _, m := range media {
		if !m.Exists {
			continue
		}
		dst := r.scheme.RecipeMediaKey(draft.Name, keys.Leaf(m.Key))
		if err := r.store.Copy(ctx, m.Key, dst); err != nil {
			slog.Warn("failed to copy draft media into recipe",
				"recipe", draft.Name,
				"source_key", m.Key,
				"error", err,
			)
		}
	}

	summary, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode recipe summary: %w", err)
	}
	if err := r.store.Put(ctx, r.scheme.RecipeSummary(draft.Name), summary, "application/json"); err != nil {
		slog.Warn("failed to write recipe summary",
			"recipe", draft.Name,
			"error", err,
		)
	}

	// Re-list and re-assemble so the caller gets the canonical stored form.
	snapshot, err := r.store.List(ctx, r.listPrefix())
	if err != nil {
		return nil, fmt.Errorf("list after publish: %w", err)
	}
	return r.assemble(ctx, htmlKey, newSnapshotIndex(r.scheme, snapshot))
}

// DeleteRecipe removes a published recipe. The HTML delete decides the
// outcome; sidecar and media cleanup is best-effort and missing secondary
// objects are not errors.
func (r *Repository) DeleteRecipe(ctx context.Context, name string) (bool, error) {
	htmlKey := r.scheme.RecipeHTML(name)

	exists, err := r.store.Exists(ctx, htmlKey)
	if err != nil {
		return false, fmt.Errorf("check recipe body: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := r.store.Delete(ctx, htmlKey); err != nil {
		return false, fmt.Errorf("delete recipe body: %w", err)
	}

	if err := r.store.Delete(ctx, r.scheme.RecipeSummary(name)); err != nil {
		slog.Warn("failed to delete recipe summary", "recipe", name, "error", err)
	}

	objects, err := r.store.List(ctx, r.scheme.RecipeMediaPrefix(name))
	if err != nil {
		slog.Warn("failed to list recipe media for cleanup", "recipe", name, "error", err)
		return true, nil
	}
	for _, obj := range objects {
		if err := r.store.Delete(ctx, obj.Key); err != nil {
			slog.Warn("failed to delete recipe media", "recipe", name, "key", obj.Key, "error", err)
		}
	}
	return true, nil
}

// GetDraftRecipe reads the user's draft document. Returns nil, nil when the
// user never created one.
func (r *Repository) GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error) {
	if userID == "" {
		return nil, model.ErrEmptyUserID
	}

	data, err := r.store.Get(ctx, r.scheme.DraftDocument(userID))
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read draft document: %w", err)
	}

	var draft model.DraftRecipe
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decode draft document: %w", err)
	}
	return &draft, nil
}

// PutDraftRecipe converts the input into the canonical draft document and
// fully replaces the user's stored draft. There is no compare-and-swap;
// concurrent writers race last-write-wins.
func (r *Repository) PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
	draft, err := input.ToDraftRecipe(userID, r.now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft document: %w", err)
	}
	if err := r.store.Put(ctx, r.scheme.DraftDocument(userID), data, "application/json"); err != nil {
		return nil, fmt.Errorf("write draft document: %w", err)
	}
	return &draft, nil
}

// DeleteDraftRecipe removes the user's draft document. Returns false when
// no draft existed, signaling not-found to the caller without an error.
func (r *Repository) DeleteDraftRecipe(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, model.ErrEmptyUserID
	}

	key := r.scheme.DraftDocument(userID)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check draft document: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := r.store.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("delete draft document: %w", err)
	}
	return true, nil
}
