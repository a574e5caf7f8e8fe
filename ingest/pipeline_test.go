package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/tabvec/ai/mock"
	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *badger.Store {
	t.Helper()

	store, err := badger.NewMemoryStore(mock.NewMockEmbedder())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func writeInputFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestPipeline(t *testing.T, store *badger.Store, dir string, router Router, buf *bytes.Buffer, opts ...Option) *Pipeline {
	t.Helper()

	opts = append([]Option{WithProgressWriter(buf)}, opts...)
	p, err := NewPipeline(store, dir, router, opts...)
	require.NoError(t, err)
	return p
}

func singleRouterFor(t *testing.T, collection string) Router {
	t.Helper()

	router, err := NewRouter(ModeSingle, collection)
	require.NoError(t, err)
	return router
}

func separateRouterFor(t *testing.T) Router {
	t.Helper()

	router, err := NewRouter(ModeSeparate, "")
	require.NoError(t, err)
	return router
}

func TestNewPipeline_Validation(t *testing.T) {
	store := newTestStore(t)
	router := separateRouterFor(t)

	_, err := NewPipeline(nil, "data", router)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewPipeline(store, "", router)
	assert.ErrorIs(t, err, ErrInputDirRequired)

	_, err = NewPipeline(store, "data", nil)
	assert.ErrorIs(t, err, ErrRouterRequired)
}

func TestPipeline_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	p := newTestPipeline(t, newTestStore(t), dir, separateRouterFor(t), &buf)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Contains(t, buf.String(), "No .csv files found")
}

func TestPipeline_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	var buf bytes.Buffer
	p := newTestPipeline(t, newTestStore(t), dir, separateRouterFor(t), &buf)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input directory")
}

func TestPipeline_SingleMode(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.csv", "name,price\napple,1\nbanana,2\n")
	writeInputFile(t, dir, "b.csv", "city,country\nparis,france\nlyon,france\nnice,france\n")

	store := newTestStore(t)
	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, singleRouterFor(t, "tabvec_data"), &buf)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded())
	assert.Zero(t, report.Failed())
	assert.Equal(t, 5, report.TotalDocuments())

	// Everything landed in the one shared collection.
	names, err := store.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tabvec_data"}, names)

	col, err := store.OpenCollection(context.Background(), "tabvec_data")
	require.NoError(t, err)
	docs, err := col.(*badger.Collection).Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 5)

	// Files are processed in lexical order, rows in file order.
	assert.Equal(t, "a.csv", docs[0].Metadata[core.MetaSource])
	assert.Equal(t, "a.csv", docs[1].Metadata[core.MetaSource])
	assert.Equal(t, "b.csv", docs[2].Metadata[core.MetaSource])
	assert.EqualValues(t, 0, docs[0].Metadata[core.MetaRowIndex])
	assert.EqualValues(t, 1, docs[1].Metadata[core.MetaRowIndex])
	assert.EqualValues(t, 0, docs[2].Metadata[core.MetaRowIndex])
	assert.Equal(t, "name: apple | price: 1", docs[0].Body)
}

func TestPipeline_SeparateMode(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.csv", "name,price\napple,1\nbanana,2\n")
	writeInputFile(t, dir, "b.csv", "city,country\nparis,france\nlyon,france\nnice,france\n")

	store := newTestStore(t)
	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, separateRouterFor(t), &buf)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 5, report.TotalDocuments())

	names, err := store.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	for name, want := range map[string]uint64{"a": 2, "b": 3} {
		col, err := store.OpenCollection(context.Background(), name)
		require.NoError(t, err)
		count, err := col.(*badger.Collection).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, count, "collection %s", name)
	}

	// The summary maps each file to its resolved collection.
	output := buf.String()
	assert.Contains(t, output, "a.csv -> a (2 documents)")
	assert.Contains(t, output, "b.csv -> b (3 documents)")
}

func TestPipeline_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.csv", "name\nfirst\n")
	writeInputFile(t, dir, "bad.csv", "x,y\n1,2\n1,2,3\n")
	writeInputFile(t, dir, "c.csv", "name\nthird\n")

	store := newTestStore(t)
	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, separateRouterFor(t), &buf)

	report, err := p.Run(context.Background())
	require.NoError(t, err, "per-file failures must not abort the run")

	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	failed := report.Results[1]
	assert.Equal(t, "bad.csv", failed.File)
	require.Error(t, failed.Err)

	// Files before and after the malformed one are ingested normally.
	names, err := store.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names)

	output := buf.String()
	assert.Contains(t, output, "Error processing bad.csv")
	assert.Contains(t, output, "Ingestion complete: 2/3 files succeeded")
	assert.Contains(t, output, "bad.csv: failed:")
}

func TestPipeline_SkipsFilesWithoutRows(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "empty.csv", "name,price\n")
	writeInputFile(t, dir, "full.csv", "name\nvalue\n")

	store := newTestStore(t)
	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, separateRouterFor(t), &buf)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded(), "a file without rows is skipped, not failed")
	assert.Equal(t, 1, report.TotalDocuments())

	// No collection is created for the skipped file.
	names, err := store.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"full"}, names)

	output := buf.String()
	assert.Contains(t, output, "Skipping empty.csv: no data rows")
	assert.Contains(t, output, "empty.csv: skipped (no data rows)")
}

func TestPipeline_CollectionCollision(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "My-File.csv", "name\nfirst\n")
	writeInputFile(t, dir, "my_file.csv", "name\nsecond\n")

	store := newTestStore(t)
	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, separateRouterFor(t), &buf)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	// Lexical order puts My-File.csv first; it claims the name and the
	// second file is recorded as failed instead of silently merged.
	require.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.ErrorIs(t, report.Results[1].Err, ErrCollectionCollision)

	col, err := store.OpenCollection(context.Background(), "my_file")
	require.NoError(t, err)
	count, err := col.(*badger.Collection).Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPipeline_ProgressOutput(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.csv", "name\nfirst\n")
	writeInputFile(t, dir, "b.csv", "name\nsecond\n")

	var buf bytes.Buffer
	p := newTestPipeline(t, newTestStore(t), dir, singleRouterFor(t, "docs"), &buf)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Starting ingestion of 2 files (mode: single, batch size: 100)")
	assert.Contains(t, output, "Progress: 1/2 (50.0%)")
	assert.Contains(t, output, "Progress: 2/2 (100.0%)")
	assert.Contains(t, output, "Ingested 1 documents from a.csv into \"docs\"")
	assert.Contains(t, output, "Ingestion complete: 2/2 files succeeded, 2 documents")
}

func TestPipeline_BatchSizeOption(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.csv", "n\n1\n2\n3\n4\n5\n")

	embedder := mock.NewMockEmbedder()
	store, err := badger.NewMemoryStore(embedder)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, singleRouterFor(t, "docs"), &buf, WithBatchSize(2))

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, report.TotalDocuments())

	// 5 documents in batches of 2 means three embedding calls.
	assert.Equal(t, 3, embedder.CallCount())
}

func TestPipeline_ExtensionOption(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.tsv", "name\nfirst\n")
	writeInputFile(t, dir, "b.csv", "name\nsecond\n")

	store := newTestStore(t)
	var buf bytes.Buffer
	p := newTestPipeline(t, store, dir, separateRouterFor(t), &buf, WithExtension("tsv"))

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "a.tsv", report.Results[0].File)
	assert.Equal(t, "a", report.Results[0].Collection)
}

func TestPipeline_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "a.csv", "name\nfirst\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	p := newTestPipeline(t, newTestStore(t), dir, separateRouterFor(t), &buf)

	report, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
}
