package recipestore

import (
	"context"
	"fmt"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/keys"
)

// GetDraftMedia reconciles the user's uploaded draft media with freshly
// allocated empty slots. Existing objects come first, then enough empty
// slots to reach maxSlots; when uploads exceed maxSlots all of them are
// still returned, so the result length is always max(existing, maxSlots).
// Slots are never persisted; every call recomputes them from the listing.
func (r *Repository) GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error) {
	if userID == "" {
		return nil, model.ErrEmptyUserID
	}

	prefix := r.scheme.DraftMediaPrefix(userID)
	objects, err := r.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list draft media: %w", err)
	}

	slots := make([]model.DraftMedia, 0, max(len(objects), r.maxSlots))
	for _, obj := range objects {
		getURL, err := r.store.PresignGet(ctx, obj.Key, presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign draft media get: %w", err)
		}
		putURL, err := r.store.PresignPut(ctx, obj.Key, presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign draft media put: %w", err)
		}
		deleteURL, err := r.store.PresignDelete(ctx, obj.Key, presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign draft media delete: %w", err)
		}

		created := obj.LastModified
		slots = append(slots, model.DraftMedia{
			Exists:          true,
			Name:            keys.Leaf(obj.Key),
			Key:             obj.Key,
			GetURL:          getURL,
			PutURL:          putURL,
			DeleteURL:       deleteURL,
			CreateTimestamp: &created,
		})
	}

	// Top up with empty upload targets. No delete URL: nothing exists yet
	// to delete.
	for len(slots) < r.maxSlots {
		id := r.newID()
		key := r.scheme.DraftMediaKey(userID, id)

		getURL, err := r.store.PresignGet(ctx, key, presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign empty slot get: %w", err)
		}
		putURL, err := r.store.PresignPut(ctx, key, presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign empty slot put: %w", err)
		}

		slots = append(slots, model.DraftMedia{
			Exists: false,
			Name:   id,
			Key:    key,
			GetURL: getURL,
			PutURL: putURL,
		})
	}
	return slots, nil
}
