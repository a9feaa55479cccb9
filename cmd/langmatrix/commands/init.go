package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/logfields"
)

// InitCmd writes a starter configuration file.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, cli *CLI) error {
	if err := config.Init(cli.Config, i.Force); err != nil {
		return err
	}
	slog.Info("Configuration initialized", logfields.Path(cli.Config))
	return nil
}
