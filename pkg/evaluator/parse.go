package evaluator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// decodeStrict extracts the first JSON object from a model response and
// decodes it into target, rejecting unknown fields. Models wrap output in
// prose or markdown fences more often than not; anything outside the braces
// is discarded, anything inside must match the schema exactly.
func decodeStrict(raw string, target interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object in evaluator response")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned[start : end+1])))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("evaluator response schema mismatch: %w", err)
	}
	return nil
}

// clampScore normalizes a model-reported score into [0, 1].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
