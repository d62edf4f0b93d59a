package recipegen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractSummary parses the leading <summary> block of a generated recipe
// document and decodes the JSON object it contains. Generators that
// assemble documents from free-form text use this to recover the
// structured metadata.
func ExtractSummary(doc string) (map[string]any, error) {
	const (
		openTag  = "<summary>"
		closeTag = "</summary>"
	)

	start := strings.Index(doc, openTag)
	if start < 0 {
		return nil, fmt.Errorf("document has no <summary> tag")
	}
	rest := doc[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return nil, fmt.Errorf("document has no closing </summary> tag")
	}

	var summary map[string]any
	if err := json.Unmarshal([]byte(rest[:end]), &summary); err != nil {
		return nil, fmt.Errorf("decode summary payload: %w", err)
	}
	return summary, nil
}
