package model

// Media is one object stored under a published recipe's folder prefix,
// exposed through a time-limited presigned get URL. Immutable once issued;
// the URL expires independently of the underlying object.
type Media struct {
	Name       string
	ContentURL string
}

// Recipe is the aggregate assembled from a recipe's independent objects:
// the HTML body, the optional JSON sidecar and the media folder.
type Recipe struct {
	Name       string
	ContentURL string
	Media      []Media

	// Summary holds the machine-extracted metadata from the recipe's JSON
	// sidecar. Nil when no sidecar exists or it could not be parsed.
	Summary map[string]any
}

// HasSummary reports whether a JSON sidecar was found for this recipe.
func (r Recipe) HasSummary() bool {
	return r.Summary != nil
}
