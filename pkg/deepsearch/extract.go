package deepsearch

import (
	"sort"
	"strings"
)

// priorityKeys are checked first on any object, in this order. "raw" last so
// wrapped unparseable lines fall through to their original text only when
// nothing better is present.
var priorityKeys = []string{"content", "text", "message", "raw"}

// ExtractText pulls human-readable text out of a decoded JSON value, the
// same way the client builds its transcript. Returns "" when the value
// holds no recognizable text. Hosts can use it to render stream events.
func ExtractText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		return extractFromObject(v)
	default:
		return ""
	}
}

func extractFromObject(obj map[string]any) string {
	for _, key := range priorityKeys {
		if s, ok := obj[key].(string); ok {
			return s
		}
	}

	if choices, ok := obj["choices"].([]any); ok {
		var pieces strings.Builder
		found := false
		for _, choice := range choices {
			c, ok := choice.(map[string]any)
			if !ok {
				continue
			}
			if piece, ok := extractFromChoice(c); ok {
				pieces.WriteString(piece)
				found = true
			}
		}
		if found {
			return pieces.String()
		}
	}

	// Last resort: take up to three string values held directly by the
	// object. Keys are sorted because map iteration order is random and the
	// result must be stable across identical calls.
	keys := make([]string, 0, len(obj))
	for key, val := range obj {
		if _, ok := val.(string); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	if len(keys) > 3 {
		keys = keys[:3]
	}
	vals := make([]string, len(keys))
	for i, key := range keys {
		vals[i] = obj[key].(string)
	}
	return strings.Join(vals, " ")
}

// extractFromChoice handles one element of a "choices" array: streamed
// deltas first, then full messages, then a bare text field.
func extractFromChoice(c map[string]any) (string, bool) {
	if delta, ok := c["delta"].(map[string]any); ok {
		if content, ok := delta["content"].(string); ok {
			return content, true
		}
	}
	if message, ok := c["message"].(map[string]any); ok {
		switch content := message["content"].(type) {
		case string:
			return content, true
		case map[string]any:
			if text, ok := content["text"].(string); ok {
				return text, true
			}
		}
	}
	if text, ok := c["text"].(string); ok {
		return text, true
	}
	return "", false
}
