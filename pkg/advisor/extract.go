package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the JSON object out of free-form model output. The span
// runs from the first '{' to the last '}', which tolerates markdown fences and
// chatter on either side of the object.
func ExtractJSON(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w (%d bytes)", ErrExtraction, len(raw))
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return obj, nil
}
