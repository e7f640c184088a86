package summary

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentiment is the closed set of sentiment labels a summary may carry.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// ParseSentiment maps free-form model output onto the sentiment enum.
// Anything outside the known set collapses to neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	case SentimentMixed:
		return SentimentMixed
	default:
		return SentimentNeutral
	}
}

// Result is the structured output record of one summarization request.
// It is immutable after creation.
type Result struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary"`
	Sentiment        Sentiment `json:"sentiment"`
	KeyThemes        []string  `json:"keyThemes"`
	SourceWordCount  int       `json:"sourceWordCount"`
	CreatedAt        time.Time `json:"createdAt"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	// Structured is false when the model reply could not be parsed as JSON
	// and the raw text was wrapped as the summary instead.
	Structured bool `json:"structured"`
}

// NewID returns a fresh identifier for a Result.
func NewID() string {
	return uuid.NewString()
}

// WordCount counts whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
