package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/langmatrix/internal/buildstate"
	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/feature"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	contentDir := t.TempDir()
	return &config.Config{
		Title:      "Rust vs Swift",
		ContentDir: contentDir,
		Subjects: []config.Subject{
			{ID: "rust", Name: "Rust"},
			{ID: "swift", Name: "Swift"},
		},
	}
}

func writeDoc(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ContentDir, name), []byte(content), 0o644))
}

const genericsDoc = `---
title: "Generics - static types"
order: 500
excerpt: "Parametric polymorphism."
subjects:
  rust: supported
  swift: pending
---
## Rust

Monomorphized.
`

func TestBuild_WritesIndexPagesAndManifest(t *testing.T) {
	cfg := testConfig(t)
	writeDoc(t, cfg, "generics.md", genericsDoc)
	outputDir := t.TempDir()

	gen, err := NewGenerator(cfg, outputDir)
	require.NoError(t, err)

	manifest, err := gen.Build()
	require.NoError(t, err)
	require.NotEmpty(t, manifest.BuildID)
	require.Len(t, manifest.Pages, 2)

	index, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "Generics - static types")
	require.Contains(t, string(index), "Parametric polymorphism.")

	page, err := os.ReadFile(filepath.Join(outputDir, "features", "generics", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "Monomorphized.")

	_, err = os.Stat(filepath.Join(outputDir, "style.css"))
	require.NoError(t, err)

	loaded, err := LoadManifest(filepath.Join(outputDir, "manifest.json"))
	require.NoError(t, err)
	require.Equal(t, manifest.BuildID, loaded.BuildID)
}

func TestBuild_MalformedDocument_FailsWithoutManifest(t *testing.T) {
	cfg := testConfig(t)
	writeDoc(t, cfg, "bad.md", "no front matter\n")
	outputDir := t.TempDir()

	gen, err := NewGenerator(cfg, outputDir)
	require.NoError(t, err)

	_, err = gen.Build()
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(outputDir, "manifest.json"))
	require.True(t, os.IsNotExist(statErr))
}

func TestBuild_Incremental_SkipsUnchangedDocuments(t *testing.T) {
	cfg := testConfig(t)
	writeDoc(t, cfg, "generics.md", genericsDoc)
	outputDir := t.TempDir()

	state, err := buildstate.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer state.Close()

	gen, err := NewGenerator(cfg, outputDir)
	require.NoError(t, err)
	gen = gen.WithState(state)

	_, err = gen.Build()
	require.NoError(t, err)

	pagePath := filepath.Join(outputDir, "features", "generics", "index.html")
	_, err = os.Stat(pagePath)
	require.NoError(t, err)

	// Backdate the rendered page so a rewrite would be observable.
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(pagePath, old, old))

	_, err = gen.Build()
	require.NoError(t, err)

	secondInfo, err := os.Stat(pagePath)
	require.NoError(t, err)
	require.Equal(t, old.Unix(), secondInfo.ModTime().Unix(), "unchanged page was rewritten")

	// A content change invalidates the stored hash.
	writeDoc(t, cfg, "generics.md", genericsDoc+"\nMore.\n")
	_, err = gen.Build()
	require.NoError(t, err)

	thirdInfo, err := os.Stat(pagePath)
	require.NoError(t, err)
	require.NotEqual(t, old.Unix(), thirdInfo.ModTime().Unix(), "changed page was not re-rendered")
}

func TestDocHash_StableAcrossSubjectMapOrder(t *testing.T) {
	doc := feature.Document{
		Path:  "x.md",
		Title: "X",
		Subjects: map[string]feature.SubjectStatus{
			"rust":  {Status: feature.StatusSupported},
			"swift": {Status: feature.StatusPending},
		},
	}
	first := docHash(doc)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, docHash(doc))
	}
}

func TestDocHash_ChangesWithContent(t *testing.T) {
	doc := feature.Document{Path: "x.md", Title: "X", Body: []byte("a")}
	other := doc
	other.Body = []byte("b")
	require.NotEqual(t, docHash(doc), docHash(other))
}
