package parse

import (
	"context"
	"testing"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/grammar"
)

//nolint:gochecknoglobals
var corpus = []string{
	"P(x)",
	"all x. P(x)",
	"a && b && c",
	"!P(x)",
	"(a -> b) -> c",
	"a -> b -> c",
	"a <-> b <-> c",
	"a f b f c",
	"(x + y) = z",
	"f(x) != g(y, [0])",
	`\phi_2(x_1, \c[3])`,
	"exists y. all x. R(x, y) || !Q(y)",
	"!(all x. P(x))",
	"P(x + y, f(z))",
	"(a && b) || (c && d)",
	"a && (b || c)",
	"!!a",
	"P_{i+1}(x)",
	"x_{ab} = y",
	"P(c())",
	"(a && b)",
	"!(x = y)",
	"all x. x = x && P",
	"(a f b) g c",
	`x \circ y`,
	"¬P(x) ∧ ∀ y. Q(y) → R",
}

// roundTrip checks that both renderings of text parse back to an equal
// formula.
func roundTrip(t *testing.T, p *Parser, text string) {
	t.Helper()

	ctx := context.Background()

	e, err := p.ParseOne(ctx, text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}

	for _, proj := range []fol.Projection{fol.Symbolic, fol.Typeset} {
		out := fol.Render(e, proj, e.Brackets())

		got, err := p.ParseOne(ctx, out)
		if err != nil {
			t.Fatalf("reparse %q (from %q): %v", out, text, err)
		}

		if !got.Equal(e) {
			t.Fatalf("expected %q to reparse as\n%s\ngot\n%s", out, e.Pretty(), got.Pretty())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	p := newParser(t)

	for _, text := range corpus {
		t.Run(text, func(t *testing.T) {
			roundTrip(t, p, text)
		})
	}
}

func TestRoundTrip_Stable(t *testing.T) {
	p := newParser(t)
	ctx := context.Background()

	for _, text := range corpus {
		e, err := p.ParseOne(ctx, text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}

		once := e.String()

		again, err := p.ParseOne(ctx, once)
		if err != nil {
			t.Fatalf("reparse %q: %v", once, err)
		}

		if again.String() != once {
			t.Errorf("expected stable rendering %q, got %q", once, again.String())
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	for _, text := range corpus {
		f.Add(text)
	}

	g, err := grammar.Default(grammar.WithMaxNesting(0))
	if err != nil {
		f.Fatalf("compile grammar: %v", err)
	}

	p := New(g)

	f.Fuzz(func(t *testing.T, text string) {
		if len(text) > 512 {
			t.Skip()
		}

		if _, err := p.ParseOne(context.Background(), text); err != nil {
			t.Skip()
		}

		roundTrip(t, p, text)
	})
}
