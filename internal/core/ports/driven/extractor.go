package driven

import "context"

// Extractor converts one source document into its raw text.
// Each extractor handles specific file extensions (e.g., .pdf, .docx).
type Extractor interface {
	// SupportedExtensions returns the lowercased extensions this
	// extractor handles, including the leading dot.
	SupportedExtensions() []string

	// Extract returns the full text of the document at path.
	Extract(ctx context.Context, path string) (string, error)
}

// PageExtractor extracts per-page text from a PDF document.
// This is an optional capability: implementations wrap an external
// library and are injected at startup. When none is configured, the
// ingest stage fails with domain.ErrDependencyMissing.
type PageExtractor interface {
	// ExtractPages returns the text of every page in page order.
	// Pages with no extractable text may be empty strings.
	ExtractPages(ctx context.Context, path string) ([]string, error)
}
