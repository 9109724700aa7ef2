// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result is the extracted content of a PDF.
type Result struct {
	Text  string
	Pages int
}

// ErrNoText is returned when a PDF parses but contains no extractable text,
// e.g. a scanned document with no text layer.
var ErrNoText = fmt.Errorf("no text could be extracted from the PDF")

// PDFText extracts the plain text of a PDF held in memory.
// The underlying parser panics on some malformed inputs, so failures are
// recovered into errors here.
func PDFText(data []byte) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return nil, ErrNoText
	}

	return &Result{Text: text, Pages: reader.NumPage()}, nil
}
