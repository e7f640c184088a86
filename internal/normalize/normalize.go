package normalize

import (
	"encoding/json"
	"strings"

	"github.com/pagebrief/pagebrief/internal/summary"
)

// Output is the normalized shape of one model reply.
type Output struct {
	Summary   string
	Sentiment summary.Sentiment
	KeyThemes []string
	// Structured is false when the reply could not be parsed as JSON and the
	// raw text was wrapped as the summary instead.
	Structured bool
}

// payload mirrors the JSON object the prompt asks the model to emit. Field
// types beyond presence are not validated; unknown fields are ignored.
type payload struct {
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	KeyThemes []string `json:"keyThemes"`
}

// Parse attempts a strict JSON parse of the model output after trimming code
// fences and locating the outermost object. On success the parsed fields are
// used directly, with missing sentiment defaulting to neutral and missing
// themes to an empty list. On failure the raw text becomes the summary. Parse
// never fails; degraded output is still output.
func Parse(raw string) Output {
	trimmed := strings.TrimSpace(raw)

	if obj := extractObject(trimmed); obj != "" {
		var p payload
		if err := json.Unmarshal([]byte(obj), &p); err == nil && strings.TrimSpace(p.Summary) != "" {
			return Output{
				Summary:    strings.TrimSpace(p.Summary),
				Sentiment:  summary.ParseSentiment(p.Sentiment),
				KeyThemes:  cleanThemes(p.KeyThemes),
				Structured: true,
			}
		}
	}

	return Output{
		Summary:   trimmed,
		Sentiment: summary.SentimentNeutral,
		KeyThemes: []string{},
	}
}

// extractObject returns the outermost {...} span of s, tolerating markdown
// code fences and prose around the object. Empty when no object is present.
func extractObject(s string) string {
	s = stripFences(s)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the fence line, e.g. ```json
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func cleanThemes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
