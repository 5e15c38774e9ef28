package cmd

import (
	"context"
	"os"

	"github.com/ardnew/fol/cli/cmd/repl"
	"github.com/ardnew/fol/log"
)

// Repl starts an interactive session reading one input per line.
type Repl struct {
	Tree bool `help:"Start in tree mode instead of printing renders." short:"t"`
}

// Run executes the repl command.
func (c *Repl) Run(ctx context.Context) error {
	p, err := parserFrom(ctx)
	if err != nil {
		return err
	}

	cache := kongVar(ctx, CacheIdentifier)
	if cache == "" {
		cache = os.TempDir()
	}

	mode := repl.ModeRender
	if c.Tree {
		mode = repl.ModeTree
	}

	return repl.Run(ctx, p, cache, log.Default(), repl.WithMode(mode))
}
