package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/langmatrix/internal/buildstate"
	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
	"git.home.luguber.info/inful/langmatrix/internal/site"
)

// BuildCmd renders the full site once.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for the generated site (overrides config)"`
	Incremental bool   `short:"i" help:"Skip re-rendering documents unchanged since the last build"`
	StateDB     string `name:"state-db" default:".langmatrix-state.db" help:"Build state database used by incremental builds"`
}

func (b *BuildCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	outputDir := ResolveOutputDir(b.Output, cfg.OutputDir)
	gen, err := site.NewGenerator(cfg, outputDir)
	if err != nil {
		return err
	}

	if b.Incremental {
		state, err := buildstate.Open(b.StateDB)
		if err != nil {
			return err
		}
		defer func() {
			if err := state.Close(); err != nil {
				slog.Warn("Failed to close build state", logfields.Error(err))
			}
		}()
		gen = gen.WithState(state)
	}

	manifest, err := gen.Build()
	if err != nil {
		return err
	}

	slog.Info("Build complete",
		logfields.Output(outputDir),
		logfields.BuildID(manifest.BuildID),
		logfields.Pages(len(manifest.Pages)))
	return nil
}
