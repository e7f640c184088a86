package app

import (
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/pagebrief/pagebrief/internal/summary"
)

// WritePDF renders one result as a single-page PDF report. Layout is
// intentionally simple: title, source link, summary paragraphs, and a short
// metadata block.
func WritePDF(r summary.Result, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	title := r.Title
	if title == "" {
		title = r.URL
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.Ln(2)

	if r.URL != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.WriteLinkString(5, r.URL, r.URL)
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, para := range strings.Split(r.Summary, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 5, para, "", "L", false)
		pdf.Ln(3)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		"Sentiment: " + string(r.Sentiment),
	}
	if len(r.KeyThemes) > 0 {
		lines = append(lines, "Key themes: "+strings.Join(r.KeyThemes, ", "))
	}
	lines = append(lines,
		"Provider: "+r.Provider+" ("+r.Model+")",
		"Created: "+r.CreatedAt.Format(time.RFC3339),
	)
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}

	return pdf.OutputFileAndClose(outPath)
}
