package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

func TestSplitChunks_BlankLineBoundaries(t *testing.T) {
	chunks := SplitChunks("Para one.\n\n\nPara two.")
	assert.Equal(t, []string{"Para one.", "Para two."}, chunks)
}

func TestSplitChunks_SingleNewlineIsNotABoundary(t *testing.T) {
	chunks := SplitChunks("line one\nline two")
	assert.Equal(t, []string{"line one\nline two"}, chunks)
}

func TestSplitChunks_DropsEmptyPieces(t *testing.T) {
	chunks := SplitChunks("\n\n  \n\nfirst\n\n\t\n\nsecond\n\n")
	assert.Equal(t, []string{"first", "second"}, chunks)
}

func TestSplitChunks_EmptyInput(t *testing.T) {
	assert.Empty(t, SplitChunks(""))
	assert.Empty(t, SplitChunks("\n\n\n"))
}

func TestBuildChunks_SequentialZeroPaddedIDs(t *testing.T) {
	chunks := BuildChunks([]string{"a", "b", "c"})

	require.Len(t, chunks, 3)
	assert.Equal(t, domain.Chunk{ID: "chunk-0001", Text: "a"}, chunks[0])
	assert.Equal(t, domain.Chunk{ID: "chunk-0002", Text: "b"}, chunks[1])
	assert.Equal(t, domain.Chunk{ID: "chunk-0003", Text: "c"}, chunks[2])
}

func TestSegmentRun_ConcreteScenario(t *testing.T) {
	root := t.TempDir()
	layout := domain.NewLayout(root)
	require.NoError(t, os.MkdirAll(layout.RefinedDir(), 0o755))

	src := filepath.Join(layout.RefinedDir(), "doc.normalized.txt")
	require.NoError(t, os.WriteFile(src, []byte("Para one.\n\n\nPara two."), 0o644))

	result, err := NewSegmentService(layout).Run(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, result.Outputs, 1)
	assert.Equal(t, filepath.Join(layout.ChunksDir(), "doc.normalized.chunks.json"), result.Outputs[0])

	data, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"chunk-0001","text":"Para one."},{"id":"chunk-0002","text":"Para two."}]`,
		string(data))
}

func TestSegmentRun_EmptyTextYieldsEmptyArray(t *testing.T) {
	root := t.TempDir()
	layout := domain.NewLayout(root)
	require.NoError(t, os.MkdirAll(layout.RefinedDir(), 0o755))

	src := filepath.Join(layout.RefinedDir(), "empty.txt")
	require.NoError(t, os.WriteFile(src, []byte(""), 0o644))

	result, err := NewSegmentService(layout).Run(context.Background(), src)
	require.NoError(t, err)

	data, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestSegmentRun_SourceOutsideRefinedDir(t *testing.T) {
	root := t.TempDir()
	layout := domain.NewLayout(root)
	require.NoError(t, os.MkdirAll(layout.RawDir(), 0o755))

	src := filepath.Join(layout.RawDir(), "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("text"), 0o644))

	_, err := NewSegmentService(layout).Run(context.Background(), src)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSegmentRun_RerunOverwrites(t *testing.T) {
	root := t.TempDir()
	layout := domain.NewLayout(root)
	require.NoError(t, os.MkdirAll(layout.RefinedDir(), 0o755))

	src := filepath.Join(layout.RefinedDir(), "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("one\n\ntwo"), 0o644))

	svc := NewSegmentService(layout)
	first, err := svc.Run(context.Background(), src)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("only"), 0o644))
	second, err := svc.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, first.Outputs, second.Outputs)

	data, err := os.ReadFile(second.Outputs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"chunk-0001","text":"only"}]`, string(data))
}
