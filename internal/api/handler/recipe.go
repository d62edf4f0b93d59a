package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wasfeines/wasfeines/internal/api/middleware"
	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/usecase"
)

// Response types

type MediaResponse struct {
	Name       string `json:"name"`
	ContentURL string `json:"content_url"`
}

type RecipeResponse struct {
	Name       string          `json:"name"`
	ContentURL string          `json:"content_url"`
	Media      []MediaResponse `json:"media"`
	Summary    map[string]any  `json:"summary,omitempty"`
}

type PublishResponse struct {
	RequestID string `json:"request_id"`
}

// RecipeHandler handles published-recipe HTTP requests.
type RecipeHandler struct {
	svc usecase.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc usecase.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// List handles GET /api/v1/recipes
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListRecipes(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, toRecipeResponse(recipe))
	}

	JSON(w, http.StatusOK, out)
}

// Publish handles POST /api/v1/recipes
// It enqueues the authenticated user's draft for publishing and returns 202.
func (h *RecipeHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	receipt, err := h.svc.SubmitPublish(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusAccepted, PublishResponse{
		RequestID: receipt.RequestID,
	})
}

// Delete handles DELETE /api/v1/recipes/{name}
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		Error(w, http.StatusBadRequest, "invalid_name", "Recipe name is required")
		return
	}

	deleted, err := h.svc.DeleteRecipe(r.Context(), name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if !deleted {
		Error(w, http.StatusNotFound, "recipe_not_found", "Recipe not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNoDraft):
		Error(w, http.StatusNotFound, "draft_not_found", "No draft recipe to publish")
	case errors.Is(err, model.ErrEmptyUserID):
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing authenticated user")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toRecipeResponse(recipe model.Recipe) RecipeResponse {
	media := make([]MediaResponse, 0, len(recipe.Media))
	for _, m := range recipe.Media {
		media = append(media, MediaResponse{
			Name:       m.Name,
			ContentURL: m.ContentURL,
		})
	}

	return RecipeResponse{
		Name:       recipe.Name,
		ContentURL: recipe.ContentURL,
		Media:      media,
		Summary:    recipe.Summary,
	}
}
