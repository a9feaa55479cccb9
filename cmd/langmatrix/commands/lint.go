package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/langmatrix/internal/collection"
	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
)

// LintCmd validates every document and reports all findings, instead of
// stopping at the first like build does.
type LintCmd struct {
	Strict bool `help:"Treat warnings as errors"`
}

func (l *LintCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	report, err := collection.New(cfg.ContentDir, cfg.SubjectIDs()).Check()
	if err != nil {
		return err
	}

	for _, issue := range report.Errors {
		slog.Error(issue.Message, logfields.File(issue.Path), logfields.Rule(issue.Rule))
	}
	for _, issue := range report.Warnings {
		slog.Warn(issue.Message, logfields.File(issue.Path), logfields.Rule(issue.Rule))
	}

	if !report.Clean() {
		return fmt.Errorf("%d document(s) failed validation", len(report.Errors))
	}
	if l.Strict && len(report.Warnings) > 0 {
		return fmt.Errorf("%d warning(s) in strict mode", len(report.Warnings))
	}

	slog.Info("Content is valid", slog.Int("warnings", len(report.Warnings)))
	return nil
}
