package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jinford/cv-matcher/internal/core/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data_scientist.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 ref"), 0o644))

	store := New(dir)

	doc, err := store.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "data_scientist.pdf", doc.Name)
	assert.Equal(t, "application/pdf", doc.MediaType)
	assert.Equal(t, []byte("%PDF-1.4 ref"), doc.Data)
}

func TestFetch_MissingReference(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Fetch(context.Background(), "/nonexistent/ref.pdf")
	require.Error(t, err)

	// 参照文書の欠損は利用者の入力ミスではなくストア側の不整合
	assert.ErrorIs(t, err, matching.ErrStoreUnavailable)
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "uploads"))

	doc := matching.Document{Name: "resume.pdf", Data: []byte("%PDF-1.4 subject")}

	first, err := store.Archive(context.Background(), doc)
	require.NoError(t, err)
	second, err := store.Archive(context.Background(), doc)
	require.NoError(t, err)

	// 同名アップロードでも衝突しない
	assert.NotEqual(t, first, second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, doc.Data, data)

	assert.Contains(t, filepath.Base(first), "resume.pdf")
}
