package extractor

import (
	"encoding/json"
	"strings"
)

// rawCandidate mirrors the JSON shape the model is instructed to emit.
type rawCandidate struct {
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Quote       string `json:"quote"`
	PostNumber  int    `json:"post_number"`
}

// parseCandidates recovers a candidate array from whatever text the model
// returned. Model output is untrusted: it may be wrapped in markdown code
// fences, prefixed with prose, or be garbage. Anything unrecoverable
// yields an empty slice, never an error, so one bad reply cannot fail a
// whole influencer.
func parseCandidates(reply string) []rawCandidate {
	payload := unwrapJSONArray(reply)
	if payload == "" {
		return nil
	}

	var candidates []rawCandidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil
	}

	return candidates
}

// unwrapJSONArray strips markdown code fences and any surrounding prose,
// keeping the text from the first '[' through the last ']'.
func unwrapJSONArray(reply string) string {
	cleaned := strings.TrimSpace(reply)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}

	return cleaned[start : end+1]
}
