package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
	"git.home.luguber.info/inful/langmatrix/internal/server"
	"git.home.luguber.info/inful/langmatrix/internal/site"
)

// PreviewCmd serves the site locally, rebuilding whenever content changes.
type PreviewCmd struct {
	Output string `short:"o" help:"Output directory for the generated site (defaults to temp)"`
	Port   int    `name:"port" default:"1380" help:"Preview server port"`
}

func (p *PreviewCmd) Run(_ *Global, cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	outputDir := p.Output
	if outputDir == "" {
		tmp, err := os.MkdirTemp("", "langmatrix-preview-*")
		if err != nil {
			return fmt.Errorf("create temp output: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(tmp); err != nil {
				slog.Warn("Failed to clean temp output", logfields.Error(err))
			}
		}()
		outputDir = tmp
		slog.Info("Using temporary output directory for preview", logfields.Output(outputDir))
	}

	gen, err := site.NewGenerator(cfg, outputDir)
	if err != nil {
		return err
	}
	rebuild := func() error {
		_, err := gen.Build()
		return err
	}

	return server.New(cfg.ContentDir, outputDir, p.Port, rebuild).Start(ctx)
}
