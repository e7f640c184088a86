package prompt

import (
	"strings"
	"testing"
)

func TestTruncateWords_ShortInputUnchanged(t *testing.T) {
	in := "one two three"
	if got := TruncateWords(in, 10); got != in {
		t.Fatalf("expected unchanged input, got %q", got)
	}
}

func TestTruncateWords_CapsAtMax(t *testing.T) {
	in := strings.Repeat("word ", 5000)
	got := TruncateWords(in, MaxContentWords)
	if n := len(strings.Fields(got)); n != MaxContentWords {
		t.Fatalf("expected %d words, got %d", MaxContentWords, n)
	}
}

func TestTruncateWords_ZeroMax(t *testing.T) {
	if got := TruncateWords("anything", 0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestBuild_NeverExceedsWordBound(t *testing.T) {
	in := Input{
		Title: "Long Page",
		Text:  strings.Repeat("filler ", 10000),
	}
	msg := Build(in)
	// The template adds a handful of words of its own; the embedded content
	// must account for the bulk and stay bounded.
	if n := len(strings.Fields(msg)); n > MaxContentWords+50 {
		t.Fatalf("prompt embeds too many words: %d", n)
	}
	if !strings.Contains(msg, "Title: Long Page") {
		t.Fatalf("expected title in prompt")
	}
}

func TestBuild_IncludesLanguageHint(t *testing.T) {
	msg := Build(Input{Title: "t", Text: "hello", LanguageHint: "fi"})
	if !strings.Contains(msg, "language: fi") {
		t.Fatalf("expected language hint in prompt, got %q", msg)
	}
}

func TestBuild_OmitsEmptyTitle(t *testing.T) {
	msg := Build(Input{Text: "hello"})
	if strings.Contains(msg, "Title:") {
		t.Fatalf("did not expect title line, got %q", msg)
	}
}
