package domain

import "path/filepath"

// Layout fixes the pipeline directory convention relative to a root.
// Each stage writes into its own directory, which doubles as the next
// stage's required input root. The convention is a default, not a
// correctness requirement: stages report their outputs explicitly.
type Layout struct {
	Root string
}

// NewLayout creates a layout rooted at the given directory.
func NewLayout(root string) Layout {
	if root == "" {
		root = "."
	}
	return Layout{Root: root}
}

// DataDir is the parent of all stage directories.
func (l Layout) DataDir() string {
	return filepath.Join(l.Root, "data")
}

// RawDir holds ingested raw text, the refine stage's input root.
func (l Layout) RawDir() string {
	return filepath.Join(l.DataDir(), "raw")
}

// RefinedDir holds refined text artifacts, the segment stage's input root.
func (l Layout) RefinedDir() string {
	return filepath.Join(l.DataDir(), "refined")
}

// ChunksDir holds chunk files, the draft stage's input root.
func (l Layout) ChunksDir() string {
	return filepath.Join(l.DataDir(), "chunks")
}

// DraftsDir holds draft records, the canonicalize stage's input root.
func (l Layout) DraftsDir() string {
	return filepath.Join(l.DataDir(), "drafts")
}

// CanonicalDir holds the curated dataset, the pipeline's terminal output.
func (l Layout) CanonicalDir() string {
	return filepath.Join(l.DataDir(), "canonical")
}
