package parse

import (
	"context"
	"log/slog"
	"maps"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/grammar"
	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/pkg"
)

// DefaultMaxDepth is the deepest formula accepted unless overridden with
// [WithMaxDepth].
const DefaultMaxDepth = 256

// Parser lowers text into formulas using a compiled grammar. It holds no
// per-call state and is safe for concurrent use.
type Parser struct {
	grammar  *grammar.Grammar
	arity    map[string]int
	logger   log.Logger
	maxDepth int
}

// Option configures a [Parser].
type Option func(*Parser)

// WithMaxDepth rejects formulas deeper than n with [ErrMaxDepth]. A limit of
// zero or less disables the check.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// WithArity declares the number of arguments of function and relation
// symbols, keyed by label. Applications of a declared symbol with any other
// number of arguments fail with [ErrArityMismatch]; undeclared symbols are
// not checked.
func WithArity(table map[string]int) Option {
	return func(p *Parser) { p.arity = maps.Clone(table) }
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New returns a Parser for g.
func New(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{grammar: g, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Grammar returns the grammar p parses with.
func (p *Parser) Grammar() *grammar.Grammar { return p.grammar }

// MaxDepth returns the depth limit of p.
func (p *Parser) MaxDepth() int { return p.maxDepth }

// Tree returns the concrete parse tree of text.
func (p *Parser) Tree(ctx context.Context, text string) (*grammar.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := p.grammar.Parse(text)
	if err != nil {
		return nil, ErrParse.With(slog.String("input", text)).Wrap(err)
	}

	return root, nil
}

// Parse returns the formulas of text in order. Expressions are separated by
// ';' or newlines.
func (p *Parser) Parse(ctx context.Context, text string) ([]*fol.Expr, error) {
	root, err := p.Tree(ctx, text)
	if err != nil {
		return nil, err
	}

	if root.Rule != grammar.RuleExprs {
		return nil, ErrMalformedTree.With(
			slog.String("rule", string(root.Rule)),
			slog.String("reason", "root is not an expression list"),
		)
	}

	out := make([]*fol.Expr, 0, len(root.Children))

	for _, n := range root.Children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := p.Lower(ctx, n)
		if err != nil {
			return nil, withInput(err, text)
		}

		out = append(out, e)
	}

	p.logger.TraceContext(ctx, "parsed",
		slog.String("input", text),
		slog.Int("count", len(out)),
	)

	return out, nil
}

// ParseOne returns the only formula of text. It fails with
// [ErrMultipleExpressions] unless text holds exactly one.
func (p *Parser) ParseOne(ctx context.Context, text string) (*fol.Expr, error) {
	exprs, err := p.Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	if len(exprs) != 1 {
		return nil, ErrMultipleExpressions.With(
			slog.String("input", text),
			slog.Int("count", len(exprs)),
		)
	}

	return exprs[0], nil
}

// Lower builds the formula or term denoted by the parse tree node n.
func (p *Parser) Lower(ctx context.Context, n *grammar.Node) (*fol.Expr, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := lowering{arity: p.arity, maxDepth: p.maxDepth}

	e, err := l.lower(n, 0)
	if err != nil {
		return nil, err
	}

	if p.logger.Enabled(ctx, log.LevelTrace) {
		p.logger.TraceContext(ctx, "lowered",
			slog.String("rule", string(n.Rule)),
			slog.Any("expr", e),
		)
	}

	return e, nil
}

// withInput attaches the source text to err unless an error in its chain
// already carries it.
func withInput(err error, text string) error {
	if _, ok := pkg.AttrOf(err, "input"); ok {
		return err
	}

	if e, ok := err.(*pkg.Error); ok {
		return e.With(slog.String("input", text))
	}

	return err
}
