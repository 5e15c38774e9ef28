package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alecthomas/repr"

	"github.com/ardnew/fol/fol"
)

// Fmt prints formulas in one of several notations.
type Fmt struct {
	Symbol  Symbol  `cmd:"" default:"withargs" help:"Format in symbolic notation (default)."`
	Display Display `cmd:""                    help:"Format in typeset notation."`
	Tree    Tree    `cmd:""                    help:"Format as an indented expression tree."`
	JSON    JSON    `cmd:""                    help:"Format as JSON."`
	YAML    YAML    `cmd:""                    help:"Format as YAML."`
	CST     CST     `cmd:""                    help:"Dump the concrete parse tree."`
}

// Symbol formats input in the machine-parseable notation.
type Symbol struct {
	Input `embed:""`
}

// Run executes the fmt symbol command.
func (c *Symbol) Run(ctx context.Context) error {
	exprs, err := c.parse(ctx)
	if err != nil {
		return err
	}

	return printRendered(ctx, exprs, fol.Symbolic)
}

// Display formats input using the typeset display strings.
type Display struct {
	Input `embed:""`
}

// Run executes the fmt display command.
func (c *Display) Run(ctx context.Context) error {
	exprs, err := c.parse(ctx)
	if err != nil {
		return err
	}

	return printRendered(ctx, exprs, fol.Typeset)
}

// Tree formats each expression as an indented tree, one node per line.
type Tree struct {
	Input `embed:""`

	Margin string `help:"Prefix for every line."`
	Tab    string `default:"  " help:"Indentation per level."`
}

// Run executes the fmt tree command.
func (c *Tree) Run(ctx context.Context) error {
	exprs, err := c.parse(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for _, e := range exprs {
		_, err := fmt.Fprintln(w, e.Pretty(fol.WithMargin(c.Margin), fol.WithTab(c.Tab)))
		if err != nil {
			return err
		}
	}

	return nil
}

// JSON formats input as a JSON array of expression representations.
type JSON struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)." short:"i"`
}

// Run executes the fmt json command.
func (c *JSON) Run(ctx context.Context) error {
	exprs, err := c.parse(ctx)
	if err != nil {
		return err
	}

	return fol.EncodeJSON(outputFrom(ctx), c.Indent, exprs...)
}

// YAML formats input as a YAML sequence of expression representations.
type YAML struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)." short:"i"`
}

// Run executes the fmt yaml command.
func (c *YAML) Run(ctx context.Context) error {
	exprs, err := c.parse(ctx)
	if err != nil {
		return err
	}

	err = fol.EncodeYAML(ctx, outputFrom(ctx), c.Indent, exprs...)
	if err != nil {
		return ErrYAMLMarshal.With(slog.Int("count", len(exprs))).Wrap(err)
	}

	return nil
}

// CST dumps the labelled parse tree produced by the grammar, before it is
// lowered into expressions.
type CST struct {
	Formula []string `arg:"" help:"Formula text. Several arguments are read as separate lines." optional:""`

	Compact bool `help:"Print the tree as a single s-expression." short:"c"`
}

// Run executes the fmt cst command.
func (c *CST) Run(ctx context.Context) error {
	p, err := parserFrom(ctx)
	if err != nil {
		return err
	}

	text, err := Input{Formula: c.Formula}.text(ctx)
	if err != nil {
		return err
	}

	tree, err := p.Tree(ctx, text)
	if err != nil {
		return err
	}

	out := repr.String(tree, repr.Indent("  "))
	if c.Compact {
		out = tree.String()
	}

	_, err = fmt.Fprintln(outputFrom(ctx), out)

	return err
}
