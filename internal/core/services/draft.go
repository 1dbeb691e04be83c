package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
	"github.com/crucible-labs/forge-cli/internal/logger"
)

// DraftService produces one draft record per chunk by calling the
// drafting collaborator, strictly in chunk order. A model response that
// fails to parse is replaced with the empty-draft fallback; a transport
// failure aborts the whole stage.
type DraftService struct {
	layout  domain.Layout
	drafter driven.Drafter
}

// NewDraftService creates a draft service.
func NewDraftService(layout domain.Layout, drafter driven.Drafter) *DraftService {
	return &DraftService{layout: layout, drafter: drafter}
}

// Run drafts annotations for one chunks file from data/chunks into
// data/drafts.
func (s *DraftService) Run(ctx context.Context, source string) (*domain.StageResult, error) {
	src, err := resolveSource(source)
	if err != nil {
		return nil, err
	}
	if err := requireExtension(src, ".json", "provide a .json chunks file from data/chunks"); err != nil {
		return nil, err
	}
	if err := requireWithin(src, s.layout.ChunksDir()); err != nil {
		return nil, err
	}

	chunks, err := loadChunks(src)
	if err != nil {
		return nil, err
	}
	logger.Debug("draft: %d chunks, model %s", len(chunks), s.drafter.ModelName())

	records := make([]domain.DraftRecord, 0, len(chunks))
	for _, chunk := range chunks {
		content, err := s.drafter.Draft(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("draft %s: %w", chunk.ID, err)
		}
		records = append(records, parseDraft(chunk.ID, content))
	}

	outDir := s.layout.DraftsDir()
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(stem(src), ".chunks")
	outPath := filepath.Join(outDir, base+".drafts.jsonl")
	if err := writeJSONLines(outPath, records); err != nil {
		return nil, err
	}

	return &domain.StageResult{
		Stage:   domain.StageDraft,
		Source:  src,
		Outputs: []string{outPath},
	}, nil
}

// loadChunks reads a chunks file written by the segment stage.
func loadChunks(path string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("%w: malformed chunks file %s: %v", domain.ErrInvalidInput, path, err)
	}
	return chunks, nil
}

// parseDraft decodes raw model content into a draft record. Unparsable
// content yields the empty-draft fallback. The chunk id and zero
// confidence are forced on every record so chunk identity survives a
// model that mangles either field.
func parseDraft(chunkID, content string) domain.DraftRecord {
	var rec domain.DraftRecord
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		logger.Warn("draft: unparsable response for %s, substituting empty draft", chunkID)
		return domain.EmptyDraft(chunkID)
	}
	rec.ChunkID = chunkID
	rec.Confidence = 0.0
	if rec.Keywords == nil {
		rec.Keywords = []string{}
	}
	return rec
}
