package extraction

import (
	"fmt"
	"strings"

	"github.com/arjunv/invoice-organizer/internal/document"
)

// ParsePayload isolates the JSON document in a model response and
// decodes it into a raw document tree. Models routinely wrap their
// output in markdown code fences or add commentary despite being told
// not to, so everything outside the outermost JSON value is discarded.
// A payload with no parseable JSON is a fatal extraction error.
func ParsePayload(text string) (any, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Find the outermost value boundaries. Trees are usually objects
	// but a bare array of line items is accepted too.
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return nil, fmt.Errorf("no JSON document found in response")
	}

	var end int
	if text[start] == '{' {
		end = strings.LastIndex(text, "}")
	} else {
		end = strings.LastIndex(text, "]")
	}
	if end == -1 || end < start {
		return nil, fmt.Errorf("invalid JSON document in response")
	}

	tree, err := document.DecodeJSON([]byte(text[start : end+1]))
	if err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}
	return tree, nil
}
