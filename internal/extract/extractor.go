package extract

// Extractor defines a minimal interface for content extraction strategies.
// Implementations can swap readability tactics without changing callers.
type Extractor interface {
	// Extract converts raw HTML bytes into a simplified Document.
	// Implementations should be deterministic and avoid side effects.
	Extract(input []byte) Document
}

// SelectorExtractor uses the FromHTML selector walk that prefers semantic
// main regions and applies noise stripping and whitespace normalization.
type SelectorExtractor struct{}

func (SelectorExtractor) Extract(input []byte) Document {
	return FromHTML(input)
}
