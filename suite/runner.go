package suite

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/grammar"
	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/parse"
)

// Errors maps the names accepted by [Case.Error] to the failure they
// expect.
//
//nolint:gochecknoglobals
var Errors = map[string]error{
	"parse":                parse.ErrParse,
	"syntax":               grammar.ErrSyntax,
	"nesting":              grammar.ErrNesting,
	"ambiguous-operator":   parse.ErrAmbiguousOperator,
	"multiple-expressions": parse.ErrMultipleExpressions,
	"max-depth":            parse.ErrMaxDepth,
	"arity-mismatch":       parse.ErrArityMismatch,
}

// Result is the outcome of one case. Err is nil if every check passed.
type Result struct {
	Err  error
	Case Case
}

// Passed reports whether the case succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Runner executes cases against a parser.
type Runner struct {
	parser *parse.Parser
	logger log.Logger
}

// Option configures a [Runner].
type Option func(*Runner)

// WithLogger sets the logger used for per-case trace output.
func WithLogger(logger log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner returns a Runner using p.
func NewRunner(p *parse.Parser, opts ...Option) *Runner {
	r := &Runner{parser: p}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes cases in order. It stops early only if ctx is done.
func (r *Runner) Run(ctx context.Context, cases []Case) []Result {
	results := make([]Result, 0, len(cases))

	for _, c := range cases {
		if ctx.Err() != nil {
			break
		}

		err := r.RunCase(ctx, c)

		r.logger.TraceContext(ctx, "case",
			slog.String("name", c.Name),
			slog.Bool("passed", err == nil),
		)

		results = append(results, Result{Case: c, Err: err})
	}

	return results
}

// RunCase executes the checks of c.
func (r *Runner) RunCase(ctx context.Context, c Case) error {
	exprs, err := r.parse(ctx, c)

	if c.Error != "" {
		want := Errors[c.Error]

		switch {
		case want == nil:
			return ErrUnknownError.With(slog.String("case", c.Name), slog.String("error", c.Error))
		case err == nil:
			return fail(c, "error", c.Error, "success")
		case !errors.Is(err, want):
			return fail(c, "error", c.Error, err.Error())
		}

		return nil
	}

	if err != nil {
		return ErrFailed.With(slog.String("case", c.Name)).Wrap(err)
	}

	if c.Count != nil && len(exprs) != *c.Count {
		return fail(c, "count", strconv.Itoa(*c.Count), strconv.Itoa(len(exprs)))
	}

	if c.Symbol != "" {
		if got := render(exprs, fol.Symbolic, c.Outer); got != c.Symbol {
			return fail(c, "symbol", c.Symbol, got)
		}
	}

	if c.Display != "" {
		if got := render(exprs, fol.Typeset, c.Outer); got != c.Display {
			return fail(c, "display", c.Display, got)
		}
	}

	for _, e := range exprs {
		if err := r.check(ctx, c, e); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) parse(ctx context.Context, c Case) ([]*fol.Expr, error) {
	if c.Count != nil {
		return r.parser.Parse(ctx, c.Input)
	}

	e, err := r.parser.ParseOne(ctx, c.Input)
	if err != nil {
		return nil, err
	}

	return []*fol.Expr{e}, nil
}

// check runs the per-formula checks: equality, depth, the assertion and the
// round trip through both renderings.
func (r *Runner) check(ctx context.Context, c Case, e *fol.Expr) error {
	if c.Equal != "" {
		other, err := r.parser.ParseOne(ctx, c.Equal)
		if err != nil {
			return ErrFailed.With(slog.String("case", c.Name), slog.String("check", "equal")).Wrap(err)
		}

		if !e.Equal(other) {
			return fail(c, "equal", other.String(), e.String())
		}
	}

	if c.Depth != nil && e.Depth() != *c.Depth {
		return fail(c, "depth", strconv.Itoa(*c.Depth), strconv.Itoa(e.Depth()))
	}

	if c.Assert != "" {
		ok, err := Eval(c.Assert, e)
		if err != nil {
			return err
		}

		if !ok {
			return fail(c, "assert", c.Assert, "false")
		}
	}

	for _, proj := range []fol.Projection{fol.Symbolic, fol.Typeset} {
		text := fol.Render(e, proj, e.Brackets())

		back, err := r.parser.ParseOne(ctx, text)
		if err != nil {
			return ErrFailed.With(
				slog.String("case", c.Name),
				slog.String("check", "round trip"),
				slog.String("render", text),
			).Wrap(err)
		}

		if !back.Equal(e) {
			return fail(c, "round trip", e.String(), back.String())
		}
	}

	return nil
}

func render(exprs []*fol.Expr, proj fol.Projection, outer *bool) string {
	parts := make([]string, len(exprs))

	for i, e := range exprs {
		o := e.Brackets()
		if outer != nil {
			o = *outer
		}

		parts[i] = fol.Render(e, proj, o)
	}

	return strings.Join(parts, "; ")
}

func fail(c Case, check, expected, got string) error {
	return ErrFailed.With(
		slog.String("case", c.Name),
		slog.String("check", check),
		slog.String("expected", expected),
		slog.String("got", got),
	)
}

// Env returns the variables visible to an assertion about e. Children are
// environments of the same shape.
func Env(e *fol.Expr) map[string]any {
	children := make([]any, 0, e.Arity())
	for _, c := range e.Children() {
		children = append(children, Env(c))
	}

	return map[string]any{
		"kind":     e.Kind().String(),
		"label":    e.Label(),
		"symbol":   e.Symbol(),
		"display":  e.Display(),
		"text":     e.String(),
		"typeset":  e.Typeset(),
		"arity":    e.Arity(),
		"depth":    e.Depth(),
		"children": children,
	}
}

// Eval evaluates the boolean expression source against [Env] of e, e.g.
//
//	kind == "and" && all(children, {.kind == "relationexpression"})
func Eval(source string, e *fol.Expr) (bool, error) {
	env := Env(e)

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, ErrAssert.With(slog.String("assert", source)).Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrAssert.With(slog.String("assert", source)).Wrap(err)
	}

	ok, _ := out.(bool)

	return ok, nil
}
