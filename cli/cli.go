package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fol/cli/cmd"
	"github.com/ardnew/fol/pkg"
)

// CLI is the top-level command-line interface for fol.
type CLI struct {
	Log    logConfig    `embed:"" group:"log"    prefix:"log-"`
	Pprof  pprofConfig  `embed:"" group:"pprof"  prefix:"pprof-"`
	Parser parserConfig `embed:"" group:"parser"`

	Source []string `help:"Read formulas from file(s) or '-' for stdin when none are given as arguments." name:"source" short:"s" type:"existingfile"`

	Parse cmd.Parse `cmd:"" default:"withargs" help:"Parse formulas and print them in symbolic notation"`
	Fmt   cmd.Fmt   `cmd:""                    help:"Print formulas in a chosen notation"`
	Eq    cmd.Eq    `cmd:""                    help:"Report whether two formulas are structurally equal"`
	Test  cmd.Test  `cmd:""                    help:"Run a YAML test suite"`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file"`
	Repl  cmd.Repl  `cmd:""                    help:"Start an interactive session"`
}

// Run executes the fol CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Parser.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Parser.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfigJSON)),
		kong.Configuration(resolve, configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	p, err := cli.Parser.build(ctx)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithParser(ctx, p)
	ctx = cmd.WithSources(ctx, cli.Source)

	return ktx.Run(ctx, &cli)
}
