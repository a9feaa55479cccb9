package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/langmatrix/cmd/langmatrix/commands"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("langmatrix"),
		kong.Description("Builds a static language-feature comparison site from markdown documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	ctx.FatalIfErrorf(err)
}
