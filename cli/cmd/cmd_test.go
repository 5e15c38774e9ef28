package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes fn with output captured and stdin replaced by stdin.
func run(t *testing.T, stdin string, fn func(context.Context) error) (string, error) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithOutput(context.Background(), &out)
	ctx = WithStdin(ctx, strings.NewReader(stdin))

	err := fn(ctx)

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fol", "P(x)")
	b := writeFile(t, dir, "b.fol", "Q(y)")

	link := filepath.Join(dir, "link.fol")
	if err := os.Symlink(a, link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		sources  []string
		stdin    string
		expected string
	}{
		{"none_reads_stdin", nil, "R(z)", "R(z)"},
		{"single", []string{a}, "", "P(x)\n"},
		{"ordered", []string{b, a}, "", "Q(y)\nP(x)\n"},
		{"duplicate_path", []string{a, a}, "", "P(x)\n"},
		{"duplicate_symlink", []string{a, link}, "", "P(x)\n"},
		{"relative_duplicate", []string{a, filepath.Join(dir, ".", "a.fol")}, "", "P(x)\n"},
		{"stdin_last", []string{"-", a}, "R(z)", "P(x)\nR(z)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithStdin(WithSources(context.Background(), tt.sources), strings.NewReader(tt.stdin))

			got, err := readSources(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestReadSources_Missing(t *testing.T) {
	ctx := WithSources(context.Background(), []string{filepath.Join(t.TempDir(), "absent")})

	if _, err := readSources(ctx); !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestInput_Parse(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		stdin string
		count int
		err   error
	}{
		{"arguments", Input{Formula: []string{"P(x)", "Q(y)"}}, "", 2, nil},
		{"stdin", Input{}, "P(x); Q(y); R(z)", 3, nil},
		{"empty", Input{}, "  \n", 0, ErrNoInput},
		{"repr", Input{Repr: true}, `[{"kind": "relationexpression", "label": "P", "symbol": "P", "display": "P"}]`, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithStdin(context.Background(), strings.NewReader(tt.stdin))

			exprs, err := tt.in.parse(ctx)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(exprs) != tt.count {
				t.Errorf("expected %d expressions, got %d", tt.count, len(exprs))
			}
		})
	}
}

func TestKongContextMissing(t *testing.T) {
	if _, err := kongContextFrom(context.Background()); !errors.Is(err, ErrNoKongContext) {
		t.Errorf("expected ErrNoKongContext, got %v", err)
	}

	if v := kongVar(context.Background(), ConfigIdentifier); v != "" {
		t.Errorf("expected empty var, got %q", v)
	}
}
