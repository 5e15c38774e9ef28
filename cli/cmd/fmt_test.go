package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/fol/grammar"
	"github.com/ardnew/fol/parse"
)

func TestParse_Run(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Parse
		expected string
	}{
		{"symbolic", Parse{Input: Input{Formula: []string{"all x. P(x) -> Q(x)"}}}, "all x. (P(x) -> Q(x))\n"},
		{"typeset", Parse{Input: Input{Formula: []string{"!a && b"}}, Typeset: true}, "¬a ∧ b\n"},
		{"list", Parse{Input: Input{Formula: []string{"P(x); (a && b)"}}}, "P(x)\n(a && b)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.cmd.Run)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParse_RunError(t *testing.T) {
	cmd := Parse{Input: Input{Formula: []string{"P(x"}}}

	if _, err := run(t, "", cmd.Run); !errors.Is(err, parse.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParse_UsesContextParser(t *testing.T) {
	g, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}

	p := parse.New(g, parse.WithArity(map[string]int{"P": 2}))
	cmd := Parse{Input: Input{Formula: []string{"P(x)"}}}

	_, err = run(t, "", func(ctx context.Context) error {
		return cmd.Run(WithParser(ctx, p))
	})
	if !errors.Is(err, parse.ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}
}

func TestFmt_Notations(t *testing.T) {
	in := Input{Formula: []string{"exists y. R(y, c)"}}

	tests := []struct {
		name     string
		run      func(context.Context) error
		expected string
	}{
		{"symbol", (&Symbol{Input: in}).Run, "exists y. R(y,c)\n"},
		{"display", (&Display{Input: in}).Run, "∃ y. R(y,c)\n"},
		{"tree", (&Tree{Input: in, Tab: "  "}).Run,
			"exists\n  |__ variable y\n  |__ relationexpression R\n    |__ variable y\n    |__ variable c\n"},
		{"tree_margin", (&Tree{Input: Input{Formula: []string{"a"}}, Margin: "> ", Tab: "\t"}).Run,
			"> relationexpression a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.run)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFmt_JSON(t *testing.T) {
	cmd := JSON{Input: Input{Formula: []string{"P(x)", "!Q"}}, Indent: 2}

	got, err := run(t, "", cmd.Run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var doc []map[string]any
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("expected valid JSON, got %v\n%s", err, got)
	}

	if len(doc) != 2 || doc[0]["kind"] != "relationexpression" || doc[1]["kind"] != "not" {
		t.Errorf("unexpected document %v", doc)
	}
}

func TestFmt_YAMLRoundTrip(t *testing.T) {
	yamlOut, err := run(t, "", (&YAML{Input: Input{Formula: []string{"a -> b <-> c"}}, Indent: 2}).Run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := run(t, yamlOut, (&Symbol{Input: Input{Repr: true}}).Run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if expected := "(a -> b) <-> c\n"; got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestFmt_CST(t *testing.T) {
	got, err := run(t, "", (&CST{Formula: []string{"P(x)"}, Compact: true}).Run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasPrefix(got, "(exprs") || !strings.Contains(got, `"P"`) {
		t.Errorf("unexpected tree %q", got)
	}

	got, err = run(t, "", (&CST{Formula: []string{"P(x)"}}).Run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(got, "grammar.Node{") {
		t.Errorf("expected repr dump, got %q", got)
	}
}

func TestEq_Run(t *testing.T) {
	tests := []struct {
		a, b     string
		expected string
		err      error
	}{
		{"x R y", "R(x, y)", "equal\n", nil},
		{"(P(a) && Q)", "P(a) && Q", "equal\n", nil},
		{"P(a)", "P(b)", "not equal\n", ErrNotEqual},
		{"P(a); Q", "P(a)", "", parse.ErrMultipleExpressions},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got, err := run(t, "", (&Eq{A: tt.a, B: tt.b}).Run)

			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}

			if tt.err == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
