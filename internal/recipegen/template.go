package recipegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/wasfeines/wasfeines/internal/domain/model"
)

// TemplateConfig holds configuration for the template generator.
type TemplateConfig struct {
	// FallbackName is used when the draft carries no name.
	// Default: "Untitled Recipe"
	FallbackName string
}

// DefaultTemplateConfig returns a TemplateConfig with sensible defaults.
func DefaultTemplateConfig() TemplateConfig {
	return TemplateConfig{
		FallbackName: "Untitled Recipe",
	}
}

// TemplateGenerator implements Generator by rendering the draft contents
// directly into the recipe document layout. It performs no enrichment of
// the draft text and is suitable as a deterministic default and for tests.
type TemplateGenerator struct {
	config TemplateConfig
	tmpl   *template.Template
}

// Compile-time verification that TemplateGenerator implements Generator.
var _ Generator = (*TemplateGenerator)(nil)

const recipeTemplate = `<summary>
{{.SummaryJSON}}
</summary>
<section class="recipe--header">
    <h1>{{.Name}}</h1>
</section>
{{if .UserContent}}<section class="recipe--summary">
    <p>{{.UserContent}}</p>
</section>
{{end}}{{if .Tags}}<section class="recipe--tags">
    <ul>
{{range .Tags}}        <li>{{.}}</li>
{{end}}    </ul>
</section>
{{end}}{{if .Images}}<section class="recipe--images">
{{range .Images}}    <img src="{{.}}" alt="{{$.Name}}">
{{end}}</section>
{{end}}{{if .Ratings}}<section class="recipe--ratings">
    <ul>
{{range .Ratings}}        <li>{{.CreatedBy}}: {{.Rating}}/5{{if .Comment}} ({{.Comment}}){{end}}</li>
{{end}}    </ul>
</section>
{{end}}`

type templateData struct {
	SummaryJSON template.HTML
	Name        string
	UserContent string
	Tags        []string
	Images      []string
	Ratings     []model.Rating
}

// NewTemplateGenerator creates a new template-based generator.
func NewTemplateGenerator(cfg TemplateConfig) *TemplateGenerator {
	if cfg.FallbackName == "" {
		cfg.FallbackName = DefaultTemplateConfig().FallbackName
	}
	return &TemplateGenerator{
		config: cfg,
		tmpl:   template.Must(template.New("recipe").Parse(recipeTemplate)),
	}
}

// Generate renders the draft into the recipe document layout.
// Media slots without an uploaded object are skipped.
func (g *TemplateGenerator) Generate(ctx context.Context, draft *model.DraftRecipe, media []model.DraftMedia) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("draft is required")
	}

	name := draft.Name
	if name == "" {
		name = g.config.FallbackName
	}

	summary := map[string]any{"name": name}
	// json.Marshal escapes <, > and & so the payload is safe to embed
	// without further HTML escaping.
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	var images []string
	for _, m := range media {
		if !m.Exists {
			continue
		}
		images = append(images, m.GetURL)
	}

	data := templateData{
		SummaryJSON: template.HTML(summaryJSON),
		Name:        name,
		UserContent: draft.UserContent,
		Tags:        draft.UserTags,
		Images:      images,
		Ratings:     draft.Ratings,
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render recipe template: %w", err)
	}

	return &Output{
		Summary: summary,
		HTML:    buf.String(),
	}, nil
}
