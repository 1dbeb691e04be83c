// Package ledongthuc implements the PDF page extraction capability
// using github.com/ledongthuc/pdf.
package ledongthuc

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
)

// Ensure PageExtractor implements the interface.
var _ driven.PageExtractor = (*PageExtractor)(nil)

// PageExtractor extracts per-page plain text from a PDF file.
type PageExtractor struct{}

// New creates a new page extractor.
func New() *PageExtractor {
	return &PageExtractor{}
}

// ExtractPages returns the text of every page in page order. Pages the
// library cannot represent yield empty strings rather than gaps, so the
// slice length always matches the page count.
func (e *PageExtractor) ExtractPages(_ context.Context, path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for pageNr := 1; pageNr <= total; pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", pageNr, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
