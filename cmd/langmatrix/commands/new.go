package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
)

// NewCmd scaffolds a feature document with one pending entry per configured
// subject, ready to be filled in.
type NewCmd struct {
	Slug  string `arg:"" help:"Document slug, e.g. generics-static-types"`
	Order int    `help:"Optional order key controlling listing position" default:"-1"`
	Force bool   `help:"Overwrite an existing document"`
}

func (n *NewCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.ContentDir, n.Slug+".md")
	if _, err := os.Stat(path); err == nil && !n.Force {
		return fmt.Errorf("document %s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}

	title := titleFromSlug(n.Slug)

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	b.WriteString("kind: feature\n")
	if n.Order >= 0 {
		fmt.Fprintf(&b, "order: %d\n", n.Order)
	}
	b.WriteString("excerpt: \"TODO: one-line summary\"\n")
	b.WriteString("subjects:\n")
	for _, subject := range cfg.Subjects {
		fmt.Fprintf(&b, "  %s: pending\n", subject.ID)
	}
	b.WriteString("---\n")
	for _, subject := range cfg.Subjects {
		fmt.Fprintf(&b, "\n## %s\n\nTODO\n", subject.Name)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	slog.Info("Document scaffolded", logfields.File(path), logfields.Feature(title))
	return nil
}

// titleFromSlug converts kebab or snake case into a display title:
// generics-static-types -> Generics Static Types.
func titleFromSlug(slug string) string {
	base := filepath.Base(slug)
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(base)
}
