package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/fol/fol"
)

// Parse prints each parsed formula on its own line.
type Parse struct {
	Input `embed:""`

	Typeset bool `help:"Print in typeset notation instead of symbolic." short:"t"`
}

// Run executes the parse command.
func (c *Parse) Run(ctx context.Context) error {
	exprs, err := c.parse(ctx)
	if err != nil {
		return err
	}

	proj := fol.Symbolic
	if c.Typeset {
		proj = fol.Typeset
	}

	return printRendered(ctx, exprs, proj)
}

func printRendered(ctx context.Context, exprs []*fol.Expr, proj fol.Projection) error {
	w := outputFrom(ctx)

	for _, e := range exprs {
		if _, err := fmt.Fprintln(w, fol.Render(e, proj, e.Brackets())); err != nil {
			return err
		}
	}

	return nil
}
