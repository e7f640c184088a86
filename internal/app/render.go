package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pagebrief/pagebrief/internal/store"
	"github.com/pagebrief/pagebrief/internal/summary"
)

// FormatMarkdown renders one result as a small Markdown document.
func FormatMarkdown(r summary.Result) string {
	var sb strings.Builder
	title := r.Title
	if title == "" {
		title = r.URL
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	if r.URL != "" {
		sb.WriteString(fmt.Sprintf("[%s](%s)\n\n", r.URL, r.URL))
	}
	sb.WriteString(r.Summary)
	sb.WriteString("\n\n")
	sb.WriteString("- Sentiment: ")
	sb.WriteString(string(r.Sentiment))
	sb.WriteString("\n")
	if len(r.KeyThemes) > 0 {
		sb.WriteString("- Key themes: ")
		sb.WriteString(strings.Join(r.KeyThemes, ", "))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("- Source: %d words via %s (%s), %d ms\n",
		r.SourceWordCount, r.Provider, r.Model, r.ProcessingTimeMs))
	sb.WriteString(fmt.Sprintf("- Created: %s\n", r.CreatedAt.Format(time.RFC3339)))
	return sb.String()
}

// FormatHistory renders stored results as a compact listing, newest first.
func FormatHistory(results []summary.Result) string {
	if len(results) == 0 {
		return "no stored summaries\n"
	}
	var sb strings.Builder
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		sb.WriteString(fmt.Sprintf("%s  %-8s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Sentiment, title))
		sb.WriteString(fmt.Sprintf("    %s  (id %s)\n", r.URL, r.ID))
	}
	return sb.String()
}

// FormatStats renders the aggregate stats blob.
func FormatStats(s store.Stats) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("summaries: %d\n", s.TotalSummaries))
	sb.WriteString(fmt.Sprintf("source words: %d\n", s.TotalWords))
	for _, id := range sortedKeys(s.ByProvider) {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", id, s.ByProvider[id]))
	}
	if !s.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("updated: %s\n", s.UpdatedAt.Format(time.RFC3339)))
	}
	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
