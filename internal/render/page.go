// Package render composes the site's HTML pages from assembled documents.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/feature"
	"git.home.luguber.info/inful/langmatrix/internal/markdown"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed assets/style.css
var StyleCSS []byte

// Renderer renders index and document pages with the embedded layouts.
type Renderer struct {
	tmpl *template.Template
	cfg  *config.Config
}

// New parses the embedded templates against the given site configuration.
func New(cfg *config.Config) (*Renderer, error) {
	tmpl, err := template.New("site").Option("missingkey=error").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, cfg: cfg}, nil
}

// Badges builds one badge per configured subject, in configuration order,
// each reflecting the document's own status for that subject.
func (r *Renderer) Badges(doc feature.Document) []Badge {
	badges := make([]Badge, 0, len(r.cfg.Subjects))
	for _, subject := range r.cfg.Subjects {
		st, ok := doc.StatusFor(subject.ID)
		badges = append(badges, StatusBadge(subject.Name, st, ok))
	}
	return badges
}

type siteData struct {
	Title       string
	Description string
	BaseURL     string
}

type indexItem struct {
	Title   string
	Excerpt string
	URL     string
	Badges  []Badge
}

type indexData struct {
	Site     siteData
	Title    string
	Features []indexItem
}

type documentData struct {
	Site   siteData
	Title  string
	Badges []Badge
	Body   template.HTML
}

func (r *Renderer) site() siteData {
	return siteData{Title: r.cfg.Title, Description: r.cfg.Description, BaseURL: r.cfg.BaseURL}
}

// Index renders the feature listing page for an already-ordered collection.
func (r *Renderer) Index(features []feature.Document) ([]byte, error) {
	data := indexData{Site: r.site(), Title: "Features"}
	for _, doc := range features {
		data.Features = append(data.Features, indexItem{
			Title:   doc.Title,
			Excerpt: doc.Excerpt,
			URL:     doc.URL(),
			Badges:  r.Badges(doc),
		})
	}
	return r.execute("index.gohtml", data)
}

// Feature renders a single feature page: title, badges, rendered body.
func (r *Renderer) Feature(doc feature.Document) ([]byte, error) {
	body, err := markdown.Render(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Path, err)
	}
	data := documentData{
		Site:   r.site(),
		Title:  doc.Title,
		Badges: r.Badges(doc),
		Body:   template.HTML(body),
	}
	return r.execute("feature.gohtml", data)
}

// Page renders a non-feature document without status badges.
func (r *Renderer) Page(doc feature.Document) ([]byte, error) {
	body, err := markdown.Render(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Path, err)
	}
	data := documentData{
		Site:  r.site(),
		Title: doc.Title,
		Body:  template.HTML(body),
	}
	return r.execute("page.gohtml", data)
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
