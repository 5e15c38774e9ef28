package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/grammar"
	"github.com/ardnew/fol/parse"
)

type (
	kongKey    struct{}
	parserKey  struct{}
	sourcesKey struct{}
	stdinKey   struct{}
	outputKey  struct{}
)

// WithContext returns a context carrying the kong context of the current
// invocation.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongKey{}, ktx)
}

func kongContextFrom(ctx context.Context) (*kong.Context, error) {
	ktx, ok := ctx.Value(kongKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil, ErrNoKongContext
	}

	return ktx, nil
}

// kongVar returns the kong variable named id, or "" if undefined.
func kongVar(ctx context.Context, id string) string {
	ktx, err := kongContextFrom(ctx)
	if err != nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

// WithParser returns a context carrying the parser shared by all commands.
func WithParser(ctx context.Context, p *parse.Parser) context.Context {
	return context.WithValue(ctx, parserKey{}, p)
}

// parserFrom returns the parser stored by [WithParser], or a parser using the
// built-in grammar if there is none.
func parserFrom(ctx context.Context) (*parse.Parser, error) {
	if p, ok := ctx.Value(parserKey{}).(*parse.Parser); ok && p != nil {
		return p, nil
	}

	g, err := grammar.Default()
	if err != nil {
		return nil, err
	}

	return parse.New(g), nil
}

// stdinSource names standard input in a source list.
const stdinSource = "-"

// WithSources returns a context carrying the input files named on the
// command line. "-" stands for stdin.
func WithSources(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, paths)
}

// WithStdin replaces the reader used for "-" and for commands run without
// any input.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a context whose commands write to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// readSources concatenates the files stored by [WithSources], each file at
// most once even if named through different paths. Stdin is read last. With
// no sources at all, stdin is read.
func readSources(ctx context.Context) (string, error) {
	paths, _ := ctx.Value(sourcesKey{}).([]string)

	var (
		b     strings.Builder
		seen  []os.FileInfo
		stdin = len(paths) == 0
	)

	for _, path := range paths {
		if path == stdinSource {
			stdin = true

			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return "", ErrReadInput.With(slog.String("file", path)).Wrap(err)
		}

		if duplicate(seen, info) {
			continue
		}

		seen = append(seen, info)

		data, err := os.ReadFile(path)
		if err != nil {
			return "", ErrReadInput.With(slog.String("file", path)).Wrap(err)
		}

		b.Write(data)
		b.WriteByte('\n')
	}

	if stdin {
		data, err := io.ReadAll(stdinFrom(ctx))
		if err != nil {
			return "", ErrReadInput.With(slog.String("file", stdinSource)).Wrap(err)
		}

		b.Write(data)
	}

	return b.String(), nil
}

func duplicate(seen []os.FileInfo, info os.FileInfo) bool {
	for _, s := range seen {
		if os.SameFile(s, info) {
			return true
		}
	}

	return false
}

// Input is embedded by commands that read formulas. Arguments are joined with
// newlines; without arguments the input comes from [readSources].
type Input struct {
	Formula []string `arg:"" help:"Formula text. Several arguments are read as separate lines." optional:""`
	Repr    bool     `       help:"Input is a YAML or JSON expression representation instead of formula text."`
}

func (in Input) text(ctx context.Context) (string, error) {
	if len(in.Formula) > 0 {
		return strings.Join(in.Formula, "\n"), nil
	}

	return readSources(ctx)
}

// parse reads and parses the input, or decodes it with [fol.DecodeYAML] if
// Repr is set. Empty input is an error.
func (in Input) parse(ctx context.Context) ([]*fol.Expr, error) {
	p, err := parserFrom(ctx)
	if err != nil {
		return nil, err
	}

	text, err := in.text(ctx)
	if err != nil {
		return nil, err
	}

	var exprs []*fol.Expr
	if in.Repr {
		exprs, err = fol.DecodeYAML(ctx, strings.NewReader(text))
	} else {
		exprs, err = p.Parse(ctx, text)
	}

	if err != nil {
		return nil, err
	}

	if len(exprs) == 0 {
		return nil, ErrNoInput
	}

	return exprs, nil
}
