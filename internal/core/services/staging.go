package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

// Every stage validates its source the same way, in the same order:
// the path must exist, carry the stage's extension, and (for stages
// with a predecessor) live under the previous stage's output directory.
// Validation happens eagerly, before any output is written.

// resolveSource returns the absolute source path, failing with
// domain.ErrNotFound if nothing exists there.
func resolveSource(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", source, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: file not found: %s", domain.ErrNotFound, source)
		}
		return "", fmt.Errorf("stat %s: %w", source, err)
	}
	return abs, nil
}

// requireExtension checks the source's extension, case-insensitively.
func requireExtension(path, ext, hint string) error {
	if strings.ToLower(filepath.Ext(path)) != ext {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, hint)
	}
	return nil
}

// requireWithin checks that path is a strict descendant of dir.
func requireWithin(path, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	rel, err := filepath.Rel(absDir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: source must be inside %s", domain.ErrInvalidInput, absDir)
	}
	return nil
}

// ensureDir creates a stage output directory. Idempotent.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// stem returns the source's base name without its final extension.
// Compound suffixes (".chunks" in "report.chunks.json") stay in place;
// downstream filenames are derived from them deliberately.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeText writes a UTF-8 text artifact, overwriting any prior output.
func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v as 2-space-indented JSON with non-ASCII and HTML
// characters left unescaped.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeJSONLines writes one compact JSON record per line, non-ASCII
// left unescaped.
func writeJSONLines[T any](path string, rows []T) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readSourceText loads a validated source file.
func readSourceText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: file not found: %s", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
