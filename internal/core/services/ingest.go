package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
	"github.com/crucible-labs/forge-cli/internal/logger"
)

// IngestService converts source documents into raw text files under
// data/raw. Format dispatch is purely by file extension; unsupported
// extensions fail before the file is opened.
type IngestService struct {
	layout     domain.Layout
	extractors map[string]driven.Extractor
}

// NewIngestService creates an ingest service with the given extractors.
// Later extractors win when extensions overlap.
func NewIngestService(layout domain.Layout, extractors ...driven.Extractor) *IngestService {
	byExt := make(map[string]driven.Extractor)
	for _, ex := range extractors {
		for _, ext := range ex.SupportedExtensions() {
			byExt[ext] = ex
		}
	}
	return &IngestService{layout: layout, extractors: byExt}
}

// Run ingests one document and writes <stem>.txt into data/raw.
// Ingest is the pipeline's entry stage, so the source may live anywhere.
func (s *IngestService) Run(ctx context.Context, source string) (*domain.StageResult, error) {
	src, err := resolveSource(source)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(src))
	extractor, ok := s.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q, provide a PDF or DOCX file", domain.ErrInvalidInput, ext)
	}

	text, err := extractor.Extract(ctx, src)
	if err != nil {
		return nil, err
	}

	outDir := s.layout.RawDir()
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	outPath := filepath.Join(outDir, stem(src)+".txt")
	if err := writeText(outPath, text); err != nil {
		return nil, err
	}
	logger.Debug("ingest: extracted %d bytes from %s", len(text), filepath.Base(src))

	return &domain.StageResult{
		Stage:   domain.StageIngest,
		Source:  src,
		Outputs: []string{outPath},
	}, nil
}
