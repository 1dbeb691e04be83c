package services

import (
	"bufio"
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

// CanonicalService turns reviewed drafts into the curated dataset.
// Every record is validated before the first review prompt: one invalid
// record anywhere aborts the whole batch, identified by line number.
// The output holds exactly one canonical record per valid draft, in
// input order; rejection is recorded, never a reason for omission.
type CanonicalService struct {
	layout   domain.Layout
	reviewer driven.Reviewer
}

// NewCanonicalService creates a canonicalize service.
func NewCanonicalService(layout domain.Layout, reviewer driven.Reviewer) *CanonicalService {
	return &CanonicalService{layout: layout, reviewer: reviewer}
}

// Run reviews one drafts file from data/drafts into data/canonical.
func (s *CanonicalService) Run(ctx context.Context, source string) (*domain.StageResult, error) {
	src, err := resolveSource(source)
	if err != nil {
		return nil, err
	}
	if err := requireExtension(src, ".jsonl", "provide a .jsonl drafts file from data/drafts"); err != nil {
		return nil, err
	}
	if err := requireWithin(src, s.layout.DraftsDir()); err != nil {
		return nil, err
	}

	drafts, err := loadDrafts(src)
	if err != nil {
		return nil, err
	}
	logger.Debug("canonicalize: %d drafts to review", len(drafts))

	records := make([]domain.CanonicalRecord, 0, len(drafts))
	for _, rec := range drafts {
		decision, err := s.reviewer.Review(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", rec.ChunkID, err)
		}
		records = append(records, decision.Apply(rec))
	}

	outDir := s.layout.CanonicalDir()
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	outPath := filepath.Join(outDir, stem(src)+".canonical.jsonl")
	if err := writeJSONLines(outPath, records); err != nil {
		return nil, err
	}

	return &domain.StageResult{
		Stage:   domain.StageCanonicalize,
		Source:  src,
		Outputs: []string{outPath},
	}, nil
}

// loadDrafts reads a drafts JSONL file, skipping blank lines. Every
// remaining line must decode to a JSON object satisfying the draft
// schema; the first violation fails the whole load with its line number.
func loadDrafts(path string) ([]domain.DraftRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []domain.DraftRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON on line %d: %v", domain.ErrInvalidInput, lineNumber, err)
		}
		if err := domain.ValidateDraftObject(obj); err != nil {
			return nil, fmt.Errorf("%w on line %d", err, lineNumber)
		}

		var rec domain.DraftRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("%w: malformed record on line %d: %v", domain.ErrInvalidInput, lineNumber, err)
		}
		if rec.Keywords == nil {
			rec.Keywords = []string{}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
