// Package export renders answer text into downloadable document formats.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDF writes the text as a PDF document. An optional title is rendered
// centered above the body.
func PDF(w io.Writer, title, text string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	// Core fonts are cp1252; translate so common unicode punctuation survives.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		doc.SetFont("Helvetica", "B", 18)
		doc.MultiCell(0, 9, tr(title), "", "C", false)
		doc.Ln(4)
	}

	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 6, tr(text), "", "L", false)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
