// Package collection discovers feature documents under the content root and
// assembles them into an ordered set for rendering.
package collection

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/langmatrix/internal/feature"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
	"git.home.luguber.info/inful/langmatrix/internal/markdown"
)

// Assembler walks a content directory and builds document collections.
type Assembler struct {
	contentDir string
	subjects   []string
}

// New creates an assembler for contentDir. subjects is the configured subject
// id list, used for coverage checks.
func New(contentDir string, subjects []string) *Assembler {
	return &Assembler{contentDir: contentDir, subjects: subjects}
}

// Collection is the assembled document set. Features are ordered for
// listing; Pages hold every other document kind.
type Collection struct {
	Features []feature.Document
	Pages    []feature.Document
}

// All returns every document, features first.
func (c *Collection) All() []feature.Document {
	out := make([]feature.Document, 0, len(c.Features)+len(c.Pages))
	out = append(out, c.Features...)
	out = append(out, c.Pages...)
	return out
}

// Assemble discovers, extracts, and orders all documents. The first
// malformed document aborts the whole build; static content is fixed at the
// source rather than skipped.
//
// Ordering: feature documents with an order key sort ascending by it;
// documents without one follow, preserving discovery order. filepath.WalkDir
// visits lexically, so discovery order is deterministic.
func (a *Assembler) Assemble() (*Collection, error) {
	docs, err := a.extractAll(nil)
	if err != nil {
		return nil, err
	}

	col := &Collection{}
	for _, doc := range docs {
		if doc.IsFeature() {
			col.Features = append(col.Features, doc)
		} else {
			col.Pages = append(col.Pages, doc)
		}
	}

	sort.SliceStable(col.Features, func(i, j int) bool {
		x, y := col.Features[i], col.Features[j]
		switch {
		case x.HasOrder && y.HasOrder:
			return x.Order < y.Order
		case x.HasOrder:
			return true
		default:
			return false
		}
	})

	slog.Debug("Collection assembled",
		slog.Int("features", len(col.Features)),
		slog.Int("pages", len(col.Pages)))
	return col, nil
}

// Issue is a single lint finding.
type Issue struct {
	Path    string
	Rule    string
	Message string
}

// Report collects all lint findings across the content set.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

// Clean reports whether the content set has no errors.
func (r *Report) Clean() bool { return len(r.Errors) == 0 }

// Check validates every document and reports all violations instead of
// stopping at the first, plus warnings for subject coverage gaps: a
// configured subject missing from a document's status map renders as a
// neutral badge, which is usually a content oversight.
func (a *Assembler) Check() (*Report, error) {
	report := &Report{}
	docs, err := a.extractAll(report)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if !doc.IsFeature() {
			continue
		}
		sections := make(map[string]struct{})
		for _, h := range markdown.Headings(doc.Body, 2) {
			sections[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
		}
		for _, subject := range a.subjects {
			if _, ok := doc.StatusFor(subject); ok {
				continue
			}
			if _, hasSection := sections[strings.ToLower(subject)]; hasSection {
				report.Warnings = append(report.Warnings, Issue{
					Path:    doc.Path,
					Rule:    "body-section-without-status",
					Message: fmt.Sprintf("body has a %q section but no status entry; the badge renders as unspecified", subject),
				})
			} else {
				report.Warnings = append(report.Warnings, Issue{
					Path:    doc.Path,
					Rule:    "subject-not-covered",
					Message: fmt.Sprintf("no status entry for configured subject %q", subject),
				})
			}
		}
		for subject := range doc.Subjects {
			if !contains(a.subjects, subject) {
				report.Warnings = append(report.Warnings, Issue{
					Path:    doc.Path,
					Rule:    "subject-not-configured",
					Message: fmt.Sprintf("status entry for %q, which is not a configured subject", subject),
				})
			}
		}
	}
	return report, nil
}

// extractAll walks the content dir and extracts every markdown document.
// With a nil report the first validation failure is returned as an error;
// otherwise failures are accumulated as report errors.
func (a *Assembler) extractAll(report *Report) ([]feature.Document, error) {
	var docs []feature.Document

	err := filepath.WalkDir(a.contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != a.contentDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !isMarkdown(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(a.contentDir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", relPath, err)
		}

		doc, err := feature.Extract(relPath, raw)
		if err != nil {
			if report == nil {
				return err
			}
			report.Errors = append(report.Errors, issueFrom(relPath, err))
			return nil
		}

		docs = append(docs, doc)
		slog.Debug("Discovered document", logfields.File(relPath), slog.String("kind", doc.Kind))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func issueFrom(relPath string, err error) Issue {
	if verr, ok := err.(*feature.ValidationError); ok {
		return Issue{Path: verr.Path, Rule: string(verr.Rule), Message: verr.Message}
	}
	return Issue{Path: relPath, Rule: "invalid", Message: err.Error()}
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
