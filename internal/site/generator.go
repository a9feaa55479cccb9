// Package site writes the rendered comparison site to the output directory.
package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/langmatrix/internal/buildstate"
	"git.home.luguber.info/inful/langmatrix/internal/collection"
	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/feature"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
	"git.home.luguber.info/inful/langmatrix/internal/render"
)

// Generator builds the static site from the content directory.
type Generator struct {
	cfg       *config.Config
	outputDir string
	renderer  *render.Renderer
	state     *buildstate.Store
}

// NewGenerator creates a generator writing to outputDir.
func NewGenerator(cfg *config.Config, outputDir string) (*Generator, error) {
	renderer, err := render.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, outputDir: outputDir, renderer: renderer}, nil
}

// WithState attaches a build-state store; document pages whose content hash
// is unchanged since the recorded build are not re-rendered.
func (g *Generator) WithState(state *buildstate.Store) *Generator {
	g.state = state
	return g
}

// Build assembles the collection and writes every page plus manifest.json.
// The index always re-renders: it depends on the whole collection.
// A single malformed document aborts the build with no partial output policy
// beyond what was already written.
func (g *Generator) Build() (*Manifest, error) {
	started := time.Now()

	col, err := collection.New(g.cfg.ContentDir, g.cfg.SubjectIDs()).Assemble()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.outputDir, "style.css"), render.StyleCSS, 0o644); err != nil {
		return nil, fmt.Errorf("write stylesheet: %w", err)
	}

	manifest := &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: started,
		Title:       g.cfg.Title,
	}

	indexHTML, err := g.renderer.Index(col.Features)
	if err != nil {
		return nil, err
	}
	if err := g.writePage("index.html", indexHTML); err != nil {
		return nil, err
	}
	manifest.Pages = append(manifest.Pages, PageEntry{Path: "index.html", SHA256: rawHash(indexHTML)})

	skipped := 0
	var sourcePaths []string
	for _, doc := range col.All() {
		sourcePaths = append(sourcePaths, doc.Path)

		outPath := g.pagePath(doc)
		hash := docHash(doc)
		manifest.Pages = append(manifest.Pages, PageEntry{Path: outPath, Source: doc.Path, SHA256: hash})

		if g.unchanged(doc.Path, hash, outPath) {
			skipped++
			slog.Debug("Skipping unchanged document", logfields.File(doc.Path))
			continue
		}

		var page []byte
		if doc.IsFeature() {
			page, err = g.renderer.Feature(doc)
		} else {
			page, err = g.renderer.Page(doc)
		}
		if err != nil {
			return nil, err
		}
		if err := g.writePage(outPath, page); err != nil {
			return nil, err
		}
		if g.state != nil {
			if err := g.state.Put(doc.Path, hash); err != nil {
				return nil, err
			}
		}
	}

	if g.state != nil {
		if err := g.state.Prune(sourcePaths); err != nil {
			return nil, err
		}
	}

	if err := manifest.Write(filepath.Join(g.outputDir, "manifest.json")); err != nil {
		return nil, err
	}

	slog.Info("Site generated",
		logfields.Output(g.outputDir),
		logfields.BuildID(manifest.BuildID),
		logfields.Pages(len(manifest.Pages)),
		logfields.Skipped(skipped),
		logfields.DurationMS(float64(time.Since(started).Milliseconds())))
	return manifest, nil
}

// pagePath maps a document to its output file under the site root.
func (g *Generator) pagePath(doc feature.Document) string {
	if doc.IsFeature() {
		return filepath.Join("features", filepath.FromSlash(doc.Slug), "index.html")
	}
	return filepath.Join(filepath.FromSlash(doc.Slug), "index.html")
}

// unchanged reports whether a document can be skipped: state is enabled, the
// stored hash matches, and the previously rendered page still exists.
func (g *Generator) unchanged(sourcePath, hash, outPath string) bool {
	if g.state == nil {
		return false
	}
	stored, ok, err := g.state.Hash(sourcePath)
	if err != nil || !ok || stored != hash {
		return false
	}
	_, statErr := os.Stat(filepath.Join(g.outputDir, outPath))
	return statErr == nil
}

func (g *Generator) writePage(relPath string, content []byte) error {
	full := filepath.Join(g.outputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create page dir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", relPath, err)
	}
	return nil
}
