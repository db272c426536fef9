// Package cli wires the loa command tree: run, repl, fmt and version.
package cli

import (
	"context"

	"github.com/alecthomas/kong"
)

// Name and Version surface in help output and `loa version`.
const (
	Name        = "loa"
	Description = "The Loa scripting language"
	Version     = "0.1.0"
)

// CLI is the top-level command-line interface for loa.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Run     RunCmd     `cmd:"" help:"Run a Loa script (defaults to the loa.yml main entry)"`
	Repl    ReplCmd    `cmd:"" help:"Start an interactive session"`
	Fmt     FmtCmd     `cmd:"" help:"Format Loa source canonically"`
	Version VersionCmd `cmd:"" help:"Print the interpreter version"`
}

// Run executes the loa CLI with the given context and arguments. The
// exit function is called with the appropriate exit code on --help.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description(Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{
			{Key: "log", Title: "Logging options"},
			{Key: "pprof", Title: "Profiling (pprof)"},
		}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := cli.Log.install()
	defer cli.Pprof.start(logger)()

	return ktx.Run(ctx, &cli)
}
