package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wasfeines/wasfeines/internal/api/middleware"
	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/usecase"
)

// Mock RecipeService

type mockRecipeService struct {
	listRecipesFn       func(ctx context.Context) ([]model.Recipe, error)
	submitPublishFn     func(ctx context.Context, userID string) (*usecase.PublishReceipt, error)
	deleteRecipeFn      func(ctx context.Context, name string) (bool, error)
	getDraftRecipeFn    func(ctx context.Context, userID string) (*model.DraftRecipe, error)
	getDraftMediaFn     func(ctx context.Context, userID string) ([]model.DraftMedia, error)
	putDraftRecipeFn    func(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error)
	deleteDraftRecipeFn func(ctx context.Context, userID string) (bool, error)
}

func (m *mockRecipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	if m.listRecipesFn != nil {
		return m.listRecipesFn(ctx)
	}
	return nil, nil
}

func (m *mockRecipeService) SubmitPublish(ctx context.Context, userID string) (*usecase.PublishReceipt, error) {
	if m.submitPublishFn != nil {
		return m.submitPublishFn(ctx, userID)
	}
	return &usecase.PublishReceipt{RequestID: "req-test"}, nil
}

func (m *mockRecipeService) DeleteRecipe(ctx context.Context, name string) (bool, error) {
	if m.deleteRecipeFn != nil {
		return m.deleteRecipeFn(ctx, name)
	}
	return false, nil
}

func (m *mockRecipeService) GetDraftRecipe(ctx context.Context, userID string) (*model.DraftRecipe, error) {
	if m.getDraftRecipeFn != nil {
		return m.getDraftRecipeFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipeService) GetDraftMedia(ctx context.Context, userID string) ([]model.DraftMedia, error) {
	if m.getDraftMediaFn != nil {
		return m.getDraftMediaFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipeService) PutDraftRecipe(ctx context.Context, userID string, input model.DraftRecipeInput) (*model.DraftRecipe, error) {
	if m.putDraftRecipeFn != nil {
		return m.putDraftRecipeFn(ctx, userID, input)
	}
	return nil, nil
}

func (m *mockRecipeService) DeleteDraftRecipe(ctx context.Context, userID string) (bool, error) {
	if m.deleteDraftRecipeFn != nil {
		return m.deleteDraftRecipeFn(ctx, userID)
	}
	return false, nil
}

// newTestRouter mounts the handlers the way cmd/api does, including auth.
func newTestRouter(svc usecase.RecipeService) http.Handler {
	recipes := NewRecipeHandler(svc)
	drafts := NewDraftHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth)
		r.Get("/recipes", recipes.List)
		r.Post("/recipes", recipes.Publish)
		r.Delete("/recipes/{name}", recipes.Delete)
		r.Get("/draftrecipe", drafts.Get)
		r.Post("/draftrecipe", drafts.Put)
		r.Delete("/draftrecipe", drafts.Delete)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal request body: %v", err)
			}
			reader = bytes.NewBuffer(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(middleware.AuthHeader, "alice@example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRecipeHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mockRecipeService)
		wantStatusCode int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "returns recipes",
			setupMock: func(m *mockRecipeService) {
				m.listRecipesFn = func(ctx context.Context) ([]model.Recipe, error) {
					return []model.Recipe{
						{
							Name:       "Lasagne",
							ContentURL: "https://s3.example.com/recipes/Lasagne.html?sig=abc",
							Media: []model.Media{
								{Name: "recipes/Lasagne/photo.jpg", ContentURL: "https://s3.example.com/photo?sig=def"},
							},
							Summary: map[string]any{"name": "Lasagne"},
						},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp []RecipeResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if len(resp) != 1 {
					t.Fatalf("got %d recipes, want 1", len(resp))
				}
				if resp[0].Name != "Lasagne" {
					t.Errorf("name = %v, want Lasagne", resp[0].Name)
				}
				if len(resp[0].Media) != 1 {
					t.Errorf("media = %v, want 1 item", resp[0].Media)
				}
				if resp[0].Summary["name"] != "Lasagne" {
					t.Errorf("summary = %v", resp[0].Summary)
				}
			},
		},
		{
			name:           "empty listing stays a JSON array",
			setupMock:      func(m *mockRecipeService) {},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				if string(bytes.TrimSpace(body)) != "[]" {
					t.Errorf("body = %s, want []", body)
				}
			},
		},
		{
			name: "service error",
			setupMock: func(m *mockRecipeService) {
				m.listRecipesFn = func(ctx context.Context) ([]model.Recipe, error) {
					return nil, errors.New("store unavailable")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRecipeService{}
			tt.setupMock(svc)
			rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/api/v1/recipes", nil)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec.Body.Bytes())
			}
		})
	}
}

func TestRecipeHandler_Publish(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mockRecipeService)
		wantStatusCode int
	}{
		{
			name: "accepted",
			setupMock: func(m *mockRecipeService) {
				m.submitPublishFn = func(ctx context.Context, userID string) (*usecase.PublishReceipt, error) {
					if userID != "alice@example.com" {
						t.Errorf("userID = %v, want authenticated user", userID)
					}
					return &usecase.PublishReceipt{RequestID: "req-1"}, nil
				}
			},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name: "no draft",
			setupMock: func(m *mockRecipeService) {
				m.submitPublishFn = func(ctx context.Context, userID string) (*usecase.PublishReceipt, error) {
					return nil, usecase.ErrNoDraft
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "queue failure",
			setupMock: func(m *mockRecipeService) {
				m.submitPublishFn = func(ctx context.Context, userID string) (*usecase.PublishReceipt, error) {
					return nil, errors.New("broker unavailable")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRecipeService{}
			tt.setupMock(svc)
			rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/api/v1/recipes", nil)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if tt.wantStatusCode == http.StatusAccepted {
				var resp PublishResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.RequestID == "" {
					t.Error("expected request_id in response")
				}
			}
		})
	}
}

func TestRecipeHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(m *mockRecipeService)
		wantStatusCode int
	}{
		{
			name: "deleted",
			path: "/api/v1/recipes/Lasagne",
			setupMock: func(m *mockRecipeService) {
				m.deleteRecipeFn = func(ctx context.Context, name string) (bool, error) {
					if name != "Lasagne" {
						t.Errorf("name = %v, want Lasagne", name)
					}
					return true, nil
				}
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:           "not found",
			path:           "/api/v1/recipes/Missing",
			setupMock:      func(m *mockRecipeService) {},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "service error",
			path: "/api/v1/recipes/Lasagne",
			setupMock: func(m *mockRecipeService) {
				m.deleteRecipeFn = func(ctx context.Context, name string) (bool, error) {
					return false, errors.New("store unavailable")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRecipeService{}
			tt.setupMock(svc)
			rec := doRequest(t, newTestRouter(svc), http.MethodDelete, tt.path, nil)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(&mockRecipeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without auth header", rec.Code)
	}
}
