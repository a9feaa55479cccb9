package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"langmatrix.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the comparison site from the content directory"`
	Lint    LintCmd    `cmd:"" help:"Validate all feature documents and report every violation"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally with rebuild-on-change and livereload"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	New     NewCmd     `cmd:"" help:"Scaffold a new feature document"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ResolveOutputDir determines the final output directory.
// Priority: CLI flag > configured directory.
func ResolveOutputDir(cliOutput, configured string) string {
	if cliOutput != "" {
		return cliOutput
	}
	return configured
}
