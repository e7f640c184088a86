package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a simplified representation of extracted page content.
type Document struct {
	Title string
	Text  string
}

// earlyStopChars is the text length after which the selector walk stops:
// a candidate this long is considered the article body.
const earlyStopChars = 500

// contentSelectors is walked in fixed priority order, semantic main regions
// before generic containers, with <body> as the final fallback.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".story-body",
	"#content",
	".content",
	"body",
}

// noiseSelector matches subtrees excluded from extracted text: scripts,
// navigation, ads, comment blocks, and similar boilerplate.
const noiseSelector = "script, style, noscript, iframe, svg, nav, header, footer, aside, form, button, " +
	".ad, .ads, .advert, .advertisement, .banner, .social, .social-share, .share-buttons, " +
	".comments, #comments, .comment-section, .sidebar, .related, .related-posts, " +
	".newsletter, .subscribe, .cookie, .consent, .popup, .modal"

// FromHTML extracts the page title and readable body text from HTML. It tries
// each content selector in order, strips noise subtrees from a cloned copy,
// and keeps the longest text seen, stopping early once a candidate exceeds
// the length threshold. It never fails; unusable input yields an empty
// Document.
func FromHTML(input []byte) Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Document{}
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())

	var best string
	for _, sel := range contentSelectors {
		text := candidateText(doc, sel)
		if len(text) > len(best) {
			best = text
		}
		if len(best) > earlyStopChars {
			break
		}
	}
	return Document{Title: title, Text: best}
}

// candidateText clones the document, removes noise under the first node
// matching sel, and returns its normalized text. Cloning keeps the walk
// non-destructive so later selectors see the original tree.
func candidateText(doc *goquery.Document, sel string) string {
	clone := goquery.CloneDocument(doc)
	cand := clone.Find(sel).First()
	if cand.Length() == 0 {
		return ""
	}
	cand.Find(noiseSelector).Remove()
	return normalizeWhitespace(blockText(cand))
}

// blockText renders a selection's text with newlines between block elements
// so headings, paragraphs, and list items do not run together.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, td").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t == "" {
			return
		}
		b.WriteString(t)
		b.WriteString("\n\n")
	})
	if b.Len() > 0 {
		return b.String()
	}
	// No block children at all (bare text in the container): fall back to the
	// selection's own text.
	return sel.Text()
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\u00a0' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
