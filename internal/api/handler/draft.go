package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wasfeines/wasfeines/internal/api/middleware"
	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/usecase"
)

// Request/Response types

type RatingRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

type PutDraftRequest struct {
	Name        string         `json:"name,omitempty"`
	UserContent string         `json:"user_content,omitempty"`
	UserTags    []string       `json:"user_tags,omitempty"`
	UserRating  *RatingRequest `json:"user_rating,omitempty"`
}

type RatingResponse struct {
	CreatedBy   string  `json:"created_by"`
	CreatedDate string  `json:"created_date"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment,omitempty"`
}

type DraftMediaResponse struct {
	Exists          bool   `json:"exists"`
	Name            string `json:"name"`
	Key             string `json:"key"`
	GetURL          string `json:"get_url"`
	PutURL          string `json:"put_url"`
	DeleteURL       string `json:"delete_url,omitempty"`
	CreateTimestamp string `json:"create_timestamp,omitempty"`
}

type DraftRecipeResponse struct {
	Name        string               `json:"name,omitempty"`
	CreatedBy   string               `json:"created_by"`
	UserContent string               `json:"user_content,omitempty"`
	UserTags    []string             `json:"user_tags,omitempty"`
	Ratings     []RatingResponse     `json:"ratings,omitempty"`
	DraftMedia  []DraftMediaResponse `json:"draft_media"`
}

// DraftHandler handles draft-recipe HTTP requests. All operations act on
// the authenticated user's single draft slot.
type DraftHandler struct {
	svc usecase.RecipeService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(svc usecase.RecipeService) *DraftHandler {
	return &DraftHandler{svc: svc}
}

// Get handles GET /api/v1/draftrecipe
// The response embeds the media slots so a single call renders the whole
// draft editor. An image-only draft is valid, so the slots are returned
// even when no draft document is saved yet.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	draft, err := h.svc.GetDraftRecipe(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	slots, err := h.svc.GetDraftMedia(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toDraftResponse(user, draft, slots))
}

// Put handles POST /api/v1/draftrecipe
// The draft document is fully replaced with the request body.
func (h *DraftHandler) Put(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req PutDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	input := model.DraftRecipeInput{
		Name:        req.Name,
		UserContent: req.UserContent,
		UserTags:    req.UserTags,
	}
	if req.UserRating != nil {
		input.UserRating = &model.RatingInput{
			Rating:  req.UserRating.Rating,
			Comment: req.UserRating.Comment,
		}
	}

	draft, err := h.svc.PutDraftRecipe(r.Context(), user, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	// The save response carries the slots too so the editor can keep
	// rendering without a follow-up fetch.
	slots, err := h.svc.GetDraftMedia(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toDraftResponse(user, draft, slots))
}

// Delete handles DELETE /api/v1/draftrecipe
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	deleted, err := h.svc.DeleteDraftRecipe(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if !deleted {
		Error(w, http.StatusNotFound, "draft_not_found", "No draft recipe saved")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrRatingOutOfRange):
		Error(w, http.StatusBadRequest, "invalid_rating", "Rating must be between 0 and 5")
	case errors.Is(err, model.ErrEmptyUserID):
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing authenticated user")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toDraftResponse(user string, draft *model.DraftRecipe, slots []model.DraftMedia) DraftRecipeResponse {
	resp := DraftRecipeResponse{
		CreatedBy:  user,
		DraftMedia: make([]DraftMediaResponse, 0, len(slots)),
	}

	if draft != nil {
		resp.Name = draft.Name
		resp.CreatedBy = draft.CreatedBy
		resp.UserContent = draft.UserContent
		resp.UserTags = draft.UserTags
		for _, rating := range draft.Ratings {
			resp.Ratings = append(resp.Ratings, RatingResponse{
				CreatedBy:   rating.CreatedBy,
				CreatedDate: rating.CreatedDate.Format(time.RFC3339),
				Rating:      rating.Rating,
				Comment:     rating.Comment,
			})
		}
	}

	for _, slot := range slots {
		m := DraftMediaResponse{
			Exists:    slot.Exists,
			Name:      slot.Name,
			Key:       slot.Key,
			GetURL:    slot.GetURL,
			PutURL:    slot.PutURL,
			DeleteURL: slot.DeleteURL,
		}
		if slot.CreateTimestamp != nil {
			m.CreateTimestamp = slot.CreateTimestamp.Format(time.RFC3339)
		}
		resp.DraftMedia = append(resp.DraftMedia, m)
	}

	return resp
}
