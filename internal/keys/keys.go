// Package keys maps domain identifiers to object store keys and back.
// Every relationship between recipes, drafts and media is encoded purely
// as a key prefix under one configured base path; nothing here does I/O.
package keys

import (
	"path"
	"strings"
)

// mediaExtensions is the fixed set of extensions classified as media.
var mediaExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Scheme encodes and decodes object store keys for a single base path.
type Scheme struct {
	base        string
	draftFolder string
}

// NewScheme creates a Scheme rooted at base with draft documents and draft
// media stored under draftFolder. Trailing slashes are stripped so callers
// may configure either form.
func NewScheme(base, draftFolder string) Scheme {
	return Scheme{
		base:        strings.TrimSuffix(base, "/"),
		draftFolder: strings.Trim(draftFolder, "/"),
	}
}

// Base returns the configured base path.
func (s Scheme) Base() string {
	return s.base
}

// RecipeHTML returns the key of a published recipe's HTML body.
// Format: {base}/{name}.html
func (s Scheme) RecipeHTML(name string) string {
	return path.Join(s.base, name) + ".html"
}

// RecipeSummary returns the key of a published recipe's JSON sidecar.
// Format: {base}/{name}.json
func (s Scheme) RecipeSummary(name string) string {
	return path.Join(s.base, name) + ".json"
}

// RecipeMediaPrefix returns the prefix under which a recipe's media live.
// Format: {base}/{name}/
func (s Scheme) RecipeMediaPrefix(name string) string {
	return path.Join(s.base, name) + "/"
}

// RecipeMediaKey returns the key of one media file inside a recipe's folder.
// Format: {base}/{name}/{file}
func (s Scheme) RecipeMediaKey(name, file string) string {
	return path.Join(s.base, name, file)
}

// DraftDocument returns the key of a user's draft recipe document.
// Format: {base}/{draftFolder}/{userID}-draft.json
func (s Scheme) DraftDocument(userID string) string {
	return path.Join(s.base, s.draftFolder, userID+"-draft.json")
}

// DraftMediaPrefix returns the prefix under which a user's draft media live.
// Format: {base}/{draftFolder}/{userID}/
func (s Scheme) DraftMediaPrefix(userID string) string {
	return path.Join(s.base, s.draftFolder, userID) + "/"
}

// DraftMediaKey returns the key of one draft media object.
// Format: {base}/{draftFolder}/{userID}/{mediaID}
func (s Scheme) DraftMediaKey(userID, mediaID string) string {
	return path.Join(s.base, s.draftFolder, userID, mediaID)
}

// RecipeName extracts the recipe name from an HTML body key.
// Returns false if the key is not an HTML key under the base path.
func (s Scheme) RecipeName(htmlKey string) (string, bool) {
	if !strings.HasSuffix(htmlKey, ".html") {
		return "", false
	}
	name := strings.TrimSuffix(htmlKey, ".html")
	if s.base != "" {
		if !strings.HasPrefix(name, s.base+"/") {
			return "", false
		}
		name = strings.TrimPrefix(name, s.base+"/")
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// IsRecipeHTML reports whether key is a recipe HTML body under the base path.
func (s Scheme) IsRecipeHTML(key string) bool {
	_, ok := s.RecipeName(key)
	return ok
}

// BelongsTo reports whether key is part of recipe name's aggregate: either
// the exact JSON sidecar or any object under the recipe's folder prefix.
func (s Scheme) BelongsTo(key, name string) bool {
	return key == s.RecipeSummary(name) || strings.HasPrefix(key, s.RecipeMediaPrefix(name))
}

// Leaf returns the last path segment of a key.
func Leaf(key string) string {
	return path.Base(key)
}

// IsMedia reports whether the key's extension is one of the recognized
// image extensions.
func IsMedia(key string) bool {
	lower := strings.ToLower(key)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
