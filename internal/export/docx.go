package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gingfrederik/docx"
)

// DOCX writes the text as a Word document, one paragraph per input line.
func DOCX(w io.Writer, title, text string) error {
	f := docx.NewFile()

	if title != "" {
		f.AddParagraph().AddText(title).Size(28)
	}

	for _, line := range strings.Split(text, "\n") {
		f.AddParagraph().AddText(line).Size(22)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("render docx: %w", err)
	}
	return nil
}
