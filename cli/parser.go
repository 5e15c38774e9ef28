package cli

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fol/grammar"
	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/parse"
	"github.com/ardnew/fol/pkg"
)

// ErrParserConfig reports a parser that could not be built from flags.
var ErrParserConfig = pkg.NewError("configure parser")

type parserConfig struct {
	Arity      map[string]int `                       help:"Require symbol NAME to be applied to N terms." placeholder:"NAME=N"`
	Lexicon    string         `                       help:"Load the grammar lexicon from a YAML file."     placeholder:"FILE"   type:"existingfile"`
	MaxDepth   int            `default:"${maxDepth}"   help:"Maximum depth of a parsed expression."`
	MaxNesting int            `default:"${maxNesting}" help:"Maximum grammar nesting (0 disables the limit)."`
}

func (parserConfig) vars() kong.Vars {
	return kong.Vars{
		"maxDepth":   strconv.Itoa(parse.DefaultMaxDepth),
		"maxNesting": strconv.Itoa(grammar.DefaultMaxNesting),
	}
}

func (parserConfig) group() kong.Group {
	return kong.Group{Key: "parser", Title: "Parser options"}
}

// build compiles the grammar and returns the parser every command shares.
func (f *parserConfig) build(ctx context.Context) (*parse.Parser, error) {
	fail := func(err error) error {
		return ErrParserConfig.With(slog.String("lexicon", f.Lexicon)).Wrap(err)
	}

	opt := grammar.WithMaxNesting(f.MaxNesting)

	var (
		g   *grammar.Grammar
		err error
	)

	if f.Lexicon == "" {
		g, err = grammar.Default(opt)
	} else {
		var file *os.File

		file, err = os.Open(f.Lexicon)
		if err != nil {
			return nil, fail(err)
		}
		defer file.Close()

		g, err = grammar.Load(file, opt)
	}

	if err != nil {
		return nil, fail(err)
	}

	log.DebugContext(ctx, "parser configured",
		slog.String("grammar", g.Lexicon().Name),
		slog.Int("max_depth", f.MaxDepth),
		slog.Int("max_nesting", g.MaxNesting()),
		slog.Int("arity", len(f.Arity)),
	)

	return parse.New(g,
		parse.WithMaxDepth(f.MaxDepth),
		parse.WithArity(f.Arity),
		parse.WithLogger(log.Default()),
	), nil
}
