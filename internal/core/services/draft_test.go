package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

// scriptedDrafter returns canned content per chunk id.
type scriptedDrafter struct {
	responses map[string]string
	err       error
	order     []string
}

func (d *scriptedDrafter) Draft(_ context.Context, chunk domain.Chunk) (string, error) {
	d.order = append(d.order, chunk.ID)
	if d.err != nil {
		return "", d.err
	}
	return d.responses[chunk.ID], nil
}

func (d *scriptedDrafter) ModelName() string { return "scripted" }

func writeChunksFile(t *testing.T, layout domain.Layout, name string, chunks []domain.Chunk) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(layout.ChunksDir(), 0o755))
	path := filepath.Join(layout.ChunksDir(), name)
	require.NoError(t, writeJSON(path, chunks))
	return path
}

func TestDraftRun_OneRecordPerChunkInOrder(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	src := writeChunksFile(t, layout, "doc.normalized.chunks.json", []domain.Chunk{
		{ID: "chunk-0001", Text: "First."},
		{ID: "chunk-0002", Text: "Second."},
	})

	drafter := &scriptedDrafter{responses: map[string]string{
		"chunk-0001": `{"chunk_id":"chunk-0001","title":"One","summary":"First chunk","keywords":["a"],"confidence":0.9}`,
		"chunk-0002": `{"chunk_id":"chunk-0002","title":"Two","summary":"Second chunk","keywords":[],"confidence":0.9}`,
	}}

	result, err := NewDraftService(layout, drafter).Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"chunk-0001", "chunk-0002"}, drafter.order)
	require.Len(t, result.Outputs, 1)
	assert.Equal(t, filepath.Join(layout.DraftsDir(), "doc.normalized.drafts.jsonl"), result.Outputs[0])

	data, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t,
		`{"chunk_id":"chunk-0001","title":"One","summary":"First chunk","keywords":["a"],"confidence":0.0}`,
		lines[0], "confidence forced to zero")
	assert.Contains(t, lines[1], `"chunk_id":"chunk-0002"`)
}

func TestDraftRun_UnparsableResponseFallsBack(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	src := writeChunksFile(t, layout, "doc.chunks.json", []domain.Chunk{
		{ID: "chunk-0003", Text: "Text."},
	})

	drafter := &scriptedDrafter{responses: map[string]string{
		"chunk-0003": "I'm sorry, I cannot help with that.",
	}}

	result, err := NewDraftService(layout, drafter).Run(context.Background(), src)
	require.NoError(t, err)

	data, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"chunk_id":"chunk-0003","title":"","summary":"","keywords":[],"confidence":0.0}`,
		strings.TrimRight(string(data), "\n"))
}

func TestDraftRun_ModelMangledIdentityIsForced(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	src := writeChunksFile(t, layout, "doc.chunks.json", []domain.Chunk{
		{ID: "chunk-0001", Text: "Text."},
	})

	drafter := &scriptedDrafter{responses: map[string]string{
		"chunk-0001": `{"chunk_id":"wrong-id","title":"T","summary":"S","keywords":["k"],"confidence":1.0}`,
	}}

	result, err := NewDraftService(layout, drafter).Run(context.Background(), src)
	require.NoError(t, err)

	data, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chunk_id":"chunk-0001"`)
	assert.NotContains(t, string(data), "wrong-id")
}

func TestDraftRun_TransportErrorAbortsStage(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	src := writeChunksFile(t, layout, "doc.chunks.json", []domain.Chunk{
		{ID: "chunk-0001", Text: "Text."},
	})

	drafter := &scriptedDrafter{err: errors.New("connection refused")}
	_, err := NewDraftService(layout, drafter).Run(context.Background(), src)
	require.Error(t, err)

	_, statErr := os.Stat(layout.DraftsDir())
	assert.True(t, os.IsNotExist(statErr), "no output on transport failure")
}

func TestDraftRun_SourceOutsideChunksDir(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	src := filepath.Join(layout.Root, "doc.chunks.json")
	require.NoError(t, os.WriteFile(src, []byte("[]"), 0o644))

	_, err := NewDraftService(layout, &scriptedDrafter{}).Run(context.Background(), src)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDraftRun_MalformedChunksFile(t *testing.T) {
	layout := domain.NewLayout(t.TempDir())
	require.NoError(t, os.MkdirAll(layout.ChunksDir(), 0o755))
	src := filepath.Join(layout.ChunksDir(), "doc.chunks.json")
	require.NoError(t, os.WriteFile(src, []byte("{not json"), 0o644))

	_, err := NewDraftService(layout, &scriptedDrafter{}).Run(context.Background(), src)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
