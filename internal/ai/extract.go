package ai

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
)

var fencedBlockRe = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?\\s*(.*?)\\s*```")

// ExtractJSON locates a JSON payload inside free-form model output.
// Models wrap their answer in markdown fences or conversational text
// more often than not, so three strategies are tried in order, first
// success wins:
//
//  1. the interior of a fenced code block,
//  2. the substring between the first '{' and the last '}',
//  3. the whole text as-is.
//
// If all three fail the text is reported as malformed.
func ExtractJSON(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: пустой ответ", ErrMalformedResponse)
	}

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		if json.Valid([]byte(m[1])) {
			return []byte(m[1]), nil
		}
		log.Printf("ai: fenced block is not valid JSON, falling back")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start > -1 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}

	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	log.Printf("ai: failed to extract JSON from model output (%d bytes)", len(text))
	return nil, ErrMalformedResponse
}

// ExtractInto extracts a JSON payload from text and unmarshals it into
// v. A text with no JSON at all reports ErrMalformedResponse; valid
// JSON that does not fit v's shape reports a schema error, so the two
// failures stay distinguishable in diagnostics.
func ExtractInto(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("JSON не соответствует ожидаемой схеме: %w", err)
	}
	return nil
}
