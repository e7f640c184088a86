package prompt

import (
	"strings"
)

// MaxContentWords bounds how much extracted text is embedded into the user
// message. Truncation is deterministic: the first N words are kept.
const MaxContentWords = 3000

// Input bundles the page data interpolated into the fixed template.
type Input struct {
	Title string
	Text  string
	// LanguageHint, when non-empty, asks the model to answer in that language.
	LanguageHint string
}

// SystemMessage is the fixed instruction requesting a JSON-shaped answer.
// The normalizer must tolerate models that ignore it.
const SystemMessage = "You are a precise reading assistant. Summarize the provided page content. " +
	"Respond with ONLY a JSON object, no prose and no code fences, with exactly these fields: " +
	`"summary" (3-5 sentence summary of the content), ` +
	`"sentiment" (one of "positive", "neutral", "negative", "mixed"), ` +
	`"keyThemes" (array of 3-5 short theme strings).`

// Build renders the user message for a summarization request. Content is
// truncated to MaxContentWords before interpolation.
func Build(in Input) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following page as JSON with fields summary, sentiment, keyThemes.")
	if in.LanguageHint != "" {
		sb.WriteString("\nWrite the summary in language: ")
		sb.WriteString(in.LanguageHint)
	}
	if strings.TrimSpace(in.Title) != "" {
		sb.WriteString("\n\nTitle: ")
		sb.WriteString(strings.TrimSpace(in.Title))
	}
	sb.WriteString("\n\nContent:\n")
	sb.WriteString(TruncateWords(in.Text, MaxContentWords))
	return sb.String()
}

// TruncateWords returns the first max whitespace-separated words of s.
// Shorter input is returned trimmed but otherwise unchanged.
func TruncateWords(s string, max int) string {
	if max <= 0 {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) <= max {
		return strings.TrimSpace(s)
	}
	return strings.Join(fields[:max], " ")
}
