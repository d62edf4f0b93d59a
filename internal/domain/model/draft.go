package model

import (
	"errors"
	"time"
)

var (
	ErrEmptyUserID      = errors.New("user id cannot be empty")
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")
)

// Rating is a single user rating. CreatedDate is stamped server-side at
// conversion time and is never client-supplied.
type Rating struct {
	CreatedBy   string    `json:"created_by"`
	CreatedDate time.Time `json:"created_date"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
}

// DraftRecipe is a user's single in-progress recipe. One exists per user at
// a time, persisted as one JSON document that is always fully replaced on
// write. The JSON tags define the persisted document layout.
type DraftRecipe struct {
	Name        string   `json:"name,omitempty"`
	CreatedBy   string   `json:"created_by"`
	UserContent string   `json:"user_content,omitempty"`
	UserTags    []string `json:"user_tags,omitempty"`
	Ratings     []Rating `json:"ratings,omitempty"`
}

// DraftMedia is one media upload slot: either an already-uploaded draft
// asset (Exists true) or a pre-allocated empty upload target. Slots are
// never persisted; they are recomputed from the store listing on every read.
type DraftMedia struct {
	Exists bool
	Name   string
	Key    string
	GetURL string
	PutURL string

	// DeleteURL is only issued for existing objects.
	DeleteURL string

	// CreateTimestamp is the object's last-modified time, nil for empty slots.
	CreateTimestamp *time.Time
}

// RatingInput is the client-supplied part of a rating.
type RatingInput struct {
	Rating  float64
	Comment string
}

// ToRating converts the input into a full Rating stamped with the
// authenticated user and the current server time.
func (in RatingInput) ToRating(createdBy string, now time.Time) Rating {
	return Rating{
		CreatedBy:   createdBy,
		CreatedDate: now,
		Rating:      in.Rating,
		Comment:     in.Comment,
	}
}

// DraftRecipeInput is the request model for saving a draft.
type DraftRecipeInput struct {
	Name        string
	UserContent string
	UserTags    []string
	UserRating  *RatingInput
}

// Validate checks client-controlled fields before conversion.
func (in DraftRecipeInput) Validate() error {
	if in.UserRating != nil && (in.UserRating.Rating < 0 || in.UserRating.Rating > 5) {
		return ErrRatingOutOfRange
	}
	return nil
}

// ToDraftRecipe converts the input into the canonical draft document for
// createdBy, stamping a fresh Rating when one was supplied.
func (in DraftRecipeInput) ToDraftRecipe(createdBy string, now time.Time) (DraftRecipe, error) {
	if createdBy == "" {
		return DraftRecipe{}, ErrEmptyUserID
	}
	if err := in.Validate(); err != nil {
		return DraftRecipe{}, err
	}

	draft := DraftRecipe{
		Name:        in.Name,
		CreatedBy:   createdBy,
		UserContent: in.UserContent,
		UserTags:    in.UserTags,
	}
	if in.UserRating != nil {
		draft.Ratings = []Rating{in.UserRating.ToRating(createdBy, now)}
	}
	return draft, nil
}
