// Package pdf extracts text from PDF documents via an injected page
// extraction capability.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents. The actual page-text extraction is
// delegated to a driven.PageExtractor; when none is configured the
// extractor reports the missing capability instead of failing lazily.
type Extractor struct {
	pages driven.PageExtractor
}

// New creates a PDF extractor around the given page extraction
// capability. A nil capability is allowed and surfaces as
// domain.ErrDependencyMissing at extraction time.
func New(pages driven.PageExtractor) *Extractor {
	return &Extractor{pages: pages}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract concatenates all pages' text in page order with no separator.
// Pages yielding no text contribute nothing, not even a blank line.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if e.pages == nil {
		return "", fmt.Errorf("%w: PDF support requires a page extraction capability", domain.ErrDependencyMissing)
	}

	pages, err := e.pages.ExtractPages(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(page)
	}
	return sb.String(), nil
}
