package recipegen

import (
	"context"

	"github.com/wasfeines/wasfeines/internal/domain/model"
)

// Output contains the result of a recipe generation run.
type Output struct {
	// Summary holds structured metadata extracted from the generated
	// document. It always carries a "name" entry on success.
	Summary map[string]any
	// HTML is the full generated recipe document. It starts with a
	// <summary> tag followed by a sequence of <section> tags.
	HTML string
}

// Generator defines the interface for turning a draft into a published
// recipe document.
type Generator interface {
	// Generate renders the draft and its uploaded media into recipe HTML.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - draft: The draft recipe to render
	//   - media: Media slots attached to the draft; entries with
	//     Exists=false are ignored
	//
	// Returns:
	//   - Output containing the summary metadata and the HTML document
	//   - error if generation fails
	Generate(ctx context.Context, draft *model.DraftRecipe, media []model.DraftMedia) (*Output, error)
}
