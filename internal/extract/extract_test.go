package extract

import (
	"strings"
	"testing"
)

func TestFromHTML_PrefersArticleOverBody(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Test Page</title></head>
	  <body>
	    <nav>Nav should be ignored</nav>
	    <article>
	      <h1>Main Heading</h1>
	      <p>` + strings.Repeat("This is the main content paragraph. ", 20) + `</p>
	    </article>
	    <div>Unrelated body chrome around the article that should not win.</div>
	    <footer>Footer text</footer>
	  </body>
	</html>`

	doc := FromHTML([]byte(html))
	if doc.Title != "Test Page" {
		t.Fatalf("expected title 'Test Page', got %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "Main Heading") {
		t.Fatalf("expected to contain main heading")
	}
	if !strings.Contains(doc.Text, "This is the main content paragraph.") {
		t.Fatalf("expected to contain main paragraph")
	}
	if strings.Contains(doc.Text, "Nav should be ignored") {
		t.Fatalf("did not expect nav text in extracted content")
	}
	if strings.Contains(doc.Text, "Footer text") {
		t.Fatalf("did not expect footer text in extracted content")
	}
}

func TestFromHTML_ContentClassFallback(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Class Page</title></head>
	  <body>
	    <div class="post-content">
	      <h2>Post Heading</h2>
	      <p>Post paragraph with enough words to matter.</p>
	    </div>
	  </body>
	</html>`

	doc := FromHTML([]byte(html))
	if !strings.Contains(doc.Text, "Post Heading") {
		t.Fatalf("expected to contain post heading, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Post paragraph") {
		t.Fatalf("expected to contain post paragraph")
	}
}

func TestFromHTML_StripsNoiseSubtrees(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Noisy</title></head>
	  <body>
	    <article>
	      <p>Real content here.</p>
	      <div class="advertisement">Buy things now</div>
	      <div id="comments"><p>First comment!</p></div>
	      <script>var tracking = true;</script>
	    </article>
	  </body>
	</html>`

	doc := FromHTML([]byte(html))
	if !strings.Contains(doc.Text, "Real content here.") {
		t.Fatalf("expected real content, got %q", doc.Text)
	}
	for _, noise := range []string{"Buy things now", "First comment!", "tracking"} {
		if strings.Contains(doc.Text, noise) {
			t.Fatalf("did not expect noise %q in %q", noise, doc.Text)
		}
	}
}

func TestFromHTML_NavAndFooterOnly(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Chrome Only</title></head>
	  <body>
	    <nav>Home | About | Contact</nav>
	    <footer>Copyright 2024</footer>
	    Stray body text.
	  </body>
	</html>`

	doc := FromHTML([]byte(html))
	if len(doc.Text) >= 500 {
		t.Fatalf("expected short text for chrome-only page, got %d chars", len(doc.Text))
	}
	if !strings.Contains(doc.Text, "Stray body text.") {
		t.Fatalf("expected fallback to remaining body text, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "Copyright") {
		t.Fatalf("did not expect footer text")
	}
}

func TestFromHTML_EmptyAndInvalidInput(t *testing.T) {
	for _, input := range []string{"", "<<<<not html>>>>"} {
		doc := FromHTML([]byte(input))
		if doc.Title != "" {
			t.Fatalf("expected empty title for %q, got %q", input, doc.Title)
		}
	}
	if doc := FromHTML(nil); doc.Text != "" {
		t.Fatalf("expected empty text for nil input, got %q", doc.Text)
	}
}

func TestNormalizeWhitespace_CapsBlankRuns(t *testing.T) {
	in := "a\n\n\n\nb   c\t\td\n\n"
	got := normalizeWhitespace(in)
	want := "a\n\nb c d"
	if got != want {
		t.Fatalf("normalizeWhitespace: got %q want %q", got, want)
	}
}
