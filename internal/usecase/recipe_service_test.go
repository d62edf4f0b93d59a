package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/domain/repository"
)

func TestRecipeService_SubmitPublish(t *testing.T) {
	draft := &model.DraftRecipe{Name: "Lasagne", CreatedBy: "alice@example.com"}

	tests := []struct {
		name      string
		userID    string
		repo      *mockRecipeRepository
		queue     *mockTaskQueue
		wantErr   error
		wantQueue bool
	}{
		{
			name:   "enqueues task for existing draft",
			userID: "alice@example.com",
			repo: &mockRecipeRepository{
				getDraftRecipeFn: func(ctx context.Context, userID string) (*model.DraftRecipe, error) {
					if userID != "alice@example.com" {
						t.Errorf("userID = %v, want alice@example.com", userID)
					}
					return draft, nil
				},
			},
			queue:     &mockTaskQueue{},
			wantQueue: true,
		},
		{
			name:   "no draft",
			userID: "alice@example.com",
			repo: &mockRecipeRepository{
				getDraftRecipeFn: func(ctx context.Context, userID string) (*model.DraftRecipe, error) {
					return nil, nil
				},
			},
			queue:   &mockTaskQueue{},
			wantErr: ErrNoDraft,
		},
		{
			name:    "empty user id",
			userID:  "",
			repo:    &mockRecipeRepository{},
			queue:   &mockTaskQueue{},
			wantErr: model.ErrEmptyUserID,
		},
		{
			name:   "draft load error",
			userID: "alice@example.com",
			repo: &mockRecipeRepository{
				getDraftRecipeFn: func(ctx context.Context, userID string) (*model.DraftRecipe, error) {
					return nil, errors.New("store unavailable")
				},
			},
			queue:   &mockTaskQueue{},
			wantErr: errors.New("store unavailable"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var enqueued *repository.PublishTask
			tt.queue.publishTaskFn = func(ctx context.Context, task repository.PublishTask) error {
				enqueued = &task
				return nil
			}

			svc := NewRecipeService(tt.repo, tt.queue)
			receipt, err := svc.SubmitPublish(context.Background(), tt.userID)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(tt.wantErr, ErrNoDraft) || errors.Is(tt.wantErr, model.ErrEmptyUserID) {
					if !errors.Is(err, tt.wantErr) {
						t.Errorf("error = %v, want %v", err, tt.wantErr)
					}
				}
				if enqueued != nil {
					t.Error("task enqueued despite error")
				}
				return
			}

			if err != nil {
				t.Fatalf("SubmitPublish failed: %v", err)
			}
			if !tt.wantQueue {
				return
			}
			if enqueued == nil {
				t.Fatal("no task enqueued")
			}
			if enqueued.UserID != tt.userID {
				t.Errorf("task UserID = %v, want %v", enqueued.UserID, tt.userID)
			}
			if enqueued.RetryCount != 0 {
				t.Errorf("task RetryCount = %v, want 0", enqueued.RetryCount)
			}
			if enqueued.RequestID == "" {
				t.Error("task RequestID is empty")
			}
			if receipt == nil || receipt.RequestID != enqueued.RequestID {
				t.Errorf("receipt = %+v, want RequestID %v", receipt, enqueued.RequestID)
			}
		})
	}
}

func TestRecipeService_SubmitPublish_QueueError(t *testing.T) {
	repo := &mockRecipeRepository{
		getDraftRecipeFn: func(ctx context.Context, userID string) (*model.DraftRecipe, error) {
			return &model.DraftRecipe{CreatedBy: userID}, nil
		},
	}
	queue := &mockTaskQueue{
		publishTaskFn: func(ctx context.Context, task repository.PublishTask) error {
			return errors.New("broker unavailable")
		},
	}

	svc := NewRecipeService(repo, queue)
	if _, err := svc.SubmitPublish(context.Background(), "alice@example.com"); err == nil {
		t.Error("expected error when enqueue fails")
	}
}

func TestRecipeService_Delegation(t *testing.T) {
	ctx := context.Background()
	recipes := []model.Recipe{{Name: "Lasagne"}}
	draft := &model.DraftRecipe{Name: "Lasagne", CreatedBy: "alice@example.com"}
	slots := []model.DraftMedia{{Exists: true, Name: "slot-1.jpg"}}

	repo := &mockRecipeRepository{
		listRecipesFn: func(ctx context.Context) ([]model.Recipe, error) {
			return recipes, nil
		},
		deleteRecipeFn: func(ctx context.Context, name string) (bool, error) {
			return name == "Lasagne", nil
		},
		getDraftRecipeFn: func(ctx context.Context, userID string) (*model.DraftRecipe, error) {
			return draft, nil
		},
		getDraftMediaFn: func(ctx context.Context, userID string) ([]model.DraftMedia, error) {
			return slots, nil
		},
		putDraftRecipeFn: func(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
			return &model.DraftRecipe{Name: input.Name, CreatedBy: userID}, nil
		},
		deleteDraftRecipeFn: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
	}

	svc := NewRecipeService(repo, &mockTaskQueue{})

	got, err := svc.ListRecipes(ctx)
	if err != nil || len(got) != 1 {
		t.Errorf("ListRecipes = %v, %v", got, err)
	}

	deleted, err := svc.DeleteRecipe(ctx, "Lasagne")
	if err != nil || !deleted {
		t.Errorf("DeleteRecipe = %v, %v", deleted, err)
	}
	deleted, err = svc.DeleteRecipe(ctx, "Missing")
	if err != nil || deleted {
		t.Errorf("DeleteRecipe(Missing) = %v, %v", deleted, err)
	}

	d, err := svc.GetDraftRecipe(ctx, "alice@example.com")
	if err != nil || d != draft {
		t.Errorf("GetDraftRecipe = %v, %v", d, err)
	}

	m, err := svc.GetDraftMedia(ctx, "alice@example.com")
	if err != nil || len(m) != 1 {
		t.Errorf("GetDraftMedia = %v, %v", m, err)
	}

	saved, err := svc.PutDraftRecipe(ctx, "alice@example.com", model.DraftRecipeInput{Name: "Pasta"})
	if err != nil || saved.Name != "Pasta" {
		t.Errorf("PutDraftRecipe = %v, %v", saved, err)
	}

	cleared, err := svc.DeleteDraftRecipe(ctx, "alice@example.com")
	if err != nil || !cleared {
		t.Errorf("DeleteDraftRecipe = %v, %v", cleared, err)
	}
}
