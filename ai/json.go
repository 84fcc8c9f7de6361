package ai

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSONObject returns the outermost JSON object in a model reply, which
// may be wrapped in prose or a code fence. ok is false when none is valid.
func ExtractJSONObject(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}
	candidate := content[start : end+1]
	if !gjson.Valid(candidate) {
		return "", false
	}
	return candidate, true
}
