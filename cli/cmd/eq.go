package cmd

import (
	"context"
	"fmt"
	"log/slog"
)

// Eq compares two formulas structurally. Rendering details such as prefix
// or infix notation and outer brackets do not matter. Unequal formulas make
// the command fail.
type Eq struct {
	A string `arg:"" help:"First formula."`
	B string `arg:"" help:"Second formula."`
}

// Run executes the eq command.
func (c *Eq) Run(ctx context.Context) error {
	p, err := parserFrom(ctx)
	if err != nil {
		return err
	}

	a, err := p.ParseOne(ctx, c.A)
	if err != nil {
		return err
	}

	b, err := p.ParseOne(ctx, c.B)
	if err != nil {
		return err
	}

	if !a.Equal(b) {
		_, _ = fmt.Fprintln(outputFrom(ctx), "not equal")

		return ErrNotEqual.With(slog.String("a", a.String()), slog.String("b", b.String()))
	}

	_, err = fmt.Fprintln(outputFrom(ctx), "equal")

	return err
}
