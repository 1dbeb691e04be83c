package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/logger"
)

// chunkSeparator is a run of two or more newlines, the blank-line
// boundary between chunks.
var chunkSeparator = regexp.MustCompile(`\n{2,}`)

// SplitChunks splits text on blank-line boundaries, trims each piece,
// and drops pieces that are empty after trimming. Dropped pieces never
// consume a chunk id.
func SplitChunks(text string) []string {
	parts := chunkSeparator.Split(text, -1)
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return kept
}

// BuildChunks numbers pieces sequentially from 1 into chunk records.
// The zero-padded id width is part of the on-disk contract; consumers
// parse the ordinal for traceability, ordering is the list order.
func BuildChunks(pieces []string) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:   fmt.Sprintf("chunk-%04d", i+1),
			Text: piece,
		})
	}
	return chunks
}

// SegmentService splits normalized text into an ordered chunk sequence.
type SegmentService struct {
	layout domain.Layout
}

// NewSegmentService creates a segment service.
func NewSegmentService(layout domain.Layout) *SegmentService {
	return &SegmentService{layout: layout}
}

// Run segments one text file from data/refined into data/chunks.
func (s *SegmentService) Run(_ context.Context, source string) (*domain.StageResult, error) {
	src, err := resolveSource(source)
	if err != nil {
		return nil, err
	}
	if err := requireExtension(src, ".txt", "provide a .txt file from data/refined"); err != nil {
		return nil, err
	}
	if err := requireWithin(src, s.layout.RefinedDir()); err != nil {
		return nil, err
	}

	text, err := readSourceText(src)
	if err != nil {
		return nil, err
	}

	chunks := BuildChunks(SplitChunks(text))
	logger.Debug("segment: %d chunks from %s", len(chunks), filepath.Base(src))

	outDir := s.layout.ChunksDir()
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	outPath := filepath.Join(outDir, stem(src)+".chunks.json")
	if err := writeJSON(outPath, chunks); err != nil {
		return nil, err
	}

	return &domain.StageResult{
		Stage:   domain.StageSegment,
		Source:  src,
		Outputs: []string{outPath},
	}, nil
}
