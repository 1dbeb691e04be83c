package services

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/logger"
)

// asciiPunctuation is the set of characters stripped by RemovePunctuation.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// tokenPattern matches maximal runs of word characters: letters, digits,
// and underscore, Unicode-aware.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// NormalizeWhitespace collapses every run of whitespace to a single
// space and trims the edges.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// RemovePunctuation strips ASCII punctuation, leaving alphanumerics,
// whitespace, and non-ASCII characters untouched. Whitespace left
// behind is not collapsed.
func RemovePunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 128 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
}

// Lowercase case-folds the whole string without tokenizing.
func Lowercase(text string) string {
	return strings.ToLower(text)
}

// CountTokens tokenizes the case-folded text into word runs and counts
// occurrences, preserving first-seen order for serialization.
func CountTokens(text string) *domain.TokenCounts {
	counts := domain.NewTokenCounts()
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts.Add(token)
	}
	return counts
}

// RefineService derives the four refined artifacts from one raw text
// file. All four are computed independently from the original text,
// never chained.
type RefineService struct {
	layout domain.Layout
}

// NewRefineService creates a refine service.
func NewRefineService(layout domain.Layout) *RefineService {
	return &RefineService{layout: layout}
}

// Run refines one raw text file from data/raw into data/refined.
func (s *RefineService) Run(_ context.Context, source string) (*domain.StageResult, error) {
	src, err := resolveSource(source)
	if err != nil {
		return nil, err
	}
	if err := requireExtension(src, ".txt", "provide a .txt file from data/raw"); err != nil {
		return nil, err
	}
	if err := requireWithin(src, s.layout.RawDir()); err != nil {
		return nil, err
	}

	text, err := readSourceText(src)
	if err != nil {
		return nil, err
	}

	outDir := s.layout.RefinedDir()
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}

	base := stem(src)
	normalizedPath := filepath.Join(outDir, base+".normalized.txt")
	nopunctPath := filepath.Join(outDir, base+".nopunct.txt")
	lowerPath := filepath.Join(outDir, base+".lower.txt")
	countsPath := filepath.Join(outDir, base+".counts.json")

	counts := CountTokens(text)
	logger.Debug("refine: %d distinct tokens, %d total", counts.Len(), counts.Total())

	if err := writeText(normalizedPath, NormalizeWhitespace(text)); err != nil {
		return nil, err
	}
	if err := writeText(nopunctPath, RemovePunctuation(text)); err != nil {
		return nil, err
	}
	if err := writeText(lowerPath, Lowercase(text)); err != nil {
		return nil, err
	}
	if err := writeJSON(countsPath, counts); err != nil {
		return nil, err
	}

	return &domain.StageResult{
		Stage:   domain.StageRefine,
		Source:  src,
		Outputs: []string{normalizedPath, nopunctPath, lowerPath, countsPath},
	}, nil
}
