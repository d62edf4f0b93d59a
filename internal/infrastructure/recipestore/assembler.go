package recipestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/infrastructure/metrics"
	"github.com/wasfeines/wasfeines/internal/keys"
)

// snapshotIndex groups one listing snapshot by owning recipe so assembly
// does not rescan the snapshot per recipe.
type snapshotIndex struct {
	// present holds every key in the snapshot.
	present map[string]struct{}
	// htmlKeys are the recipe HTML bodies found, in snapshot order.
	htmlKeys []string
	// members maps a recipe name to its sidecar and folder keys.
	members map[string][]string
}

// newSnapshotIndex builds the index in two passes: first collect the recipe
// names defined by HTML bodies, then attach every remaining key to each
// recipe it belongs to. A key joins a recipe iff it equals the recipe's
// ".json" sidecar or lies under the recipe's "/" folder prefix.
func newSnapshotIndex(scheme keys.Scheme, snapshot []repository.ObjectInfo) *snapshotIndex {
	idx := &snapshotIndex{
		present: make(map[string]struct{}, len(snapshot)),
		members: make(map[string][]string),
	}

	names := make(map[string]struct{})
	for _, obj := range snapshot {
		idx.present[obj.Key] = struct{}{}
		if name, ok := scheme.RecipeName(obj.Key); ok {
			idx.htmlKeys = append(idx.htmlKeys, obj.Key)
			names[name] = struct{}{}
		}
	}

	for _, obj := range snapshot {
		if scheme.IsRecipeHTML(obj.Key) {
			continue
		}
		for _, owner := range ownerCandidates(scheme, obj.Key) {
			if _, ok := names[owner]; ok {
				idx.members[owner] = append(idx.members[owner], obj.Key)
			}
		}
	}
	return idx
}

// ownerCandidates lists every recipe name that key could belong to: the
// name whose sidecar it is, and the name of each folder level above it.
// Recipe names may contain slashes, so all cut points are candidates.
func ownerCandidates(scheme keys.Scheme, key string) []string {
	rel := key
	if base := scheme.Base(); base != "" {
		if !strings.HasPrefix(rel, base+"/") {
			return nil
		}
		rel = strings.TrimPrefix(rel, base+"/")
	}

	var candidates []string
	if strings.HasSuffix(rel, ".json") {
		candidates = append(candidates, strings.TrimSuffix(rel, ".json"))
	}
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		candidates = append(candidates, strings.Join(parts[:i], "/"))
	}
	return candidates
}

// assemble reconstructs the Recipe aggregate for one HTML key from the
// shared snapshot: a get URL for the body, a get URL per associated media
// object, and the parsed sidecar summary when one exists.
func (r *Repository) assemble(ctx context.Context, htmlKey string, idx *snapshotIndex) (*model.Recipe, error) {
	// Should not happen within one atomic snapshot, but the contract is
	// defensive about a body that vanished mid-listing.
	if _, ok := idx.present[htmlKey]; !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrRecipeNotFound, htmlKey)
	}

	name, ok := r.scheme.RecipeName(htmlKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a recipe body", repository.ErrRecipeNotFound, htmlKey)
	}

	contentURL, err := r.store.PresignGet(ctx, htmlKey, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign recipe body: %w", err)
	}

	recipe := &model.Recipe{
		Name:       name,
		ContentURL: contentURL,
		Media:      []model.Media{},
	}

	summaryKey := r.scheme.RecipeSummary(name)
	for _, key := range idx.members[name] {
		if key == summaryKey {
			summary, err := r.fetchSummary(ctx, name, key)
			if err != nil {
				return nil, err
			}
			recipe.Summary = summary
			continue
		}
		if !keys.IsMedia(key) {
			continue
		}
		mediaURL, err := r.store.PresignGet(ctx, key, presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign recipe media: %w", err)
		}
		recipe.Media = append(recipe.Media, model.Media{
			Name:       key,
			ContentURL: mediaURL,
		})
	}
	return recipe, nil
}

// fetchSummary reads and parses a recipe's JSON sidecar. A sidecar that
// fails to parse degrades the summary to absent instead of failing the
// whole aggregate; a sidecar deleted since the snapshot is treated the same.
func (r *Repository) fetchSummary(ctx context.Context, name, key string) (map[string]any, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read recipe summary: %w", err)
	}

	var summary map[string]any
	if err := json.Unmarshal(data, &summary); err != nil {
		metrics.MalformedSummariesTotal.Inc()
		slog.Warn("malformed recipe summary, omitting",
			"recipe", name,
			"key", key,
			"error", err,
		)
		return nil, nil
	}
	return summary, nil
}
