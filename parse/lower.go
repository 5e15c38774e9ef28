package parse

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/grammar"
)

// lowering is the state of one Lower call.
type lowering struct {
	arity    map[string]int
	maxDepth int
}

// lower builds the node for n, which sits depth levels below the root of
// the formula being built.
func (l *lowering) lower(n *grammar.Node, depth int) (*fol.Expr, error) {
	if n == nil {
		return nil, ErrMalformedTree.With(slog.String("reason", "missing node"))
	}

	if l.maxDepth > 0 && depth > l.maxDepth {
		return nil, ErrMaxDepth.With(append(at(n), slog.Int("limit", l.maxDepth))...)
	}

	switch n.Rule {
	case grammar.RuleExpr, grammar.RuleTerm, grammar.RuleQuantified:
		c, err := only(n)
		if err != nil {
			return nil, err
		}

		return l.lower(c, depth)

	case grammar.RuleExprClosed, grammar.RuleTermClosed, grammar.RuleExprOpen, grammar.RuleTermOpen:
		c, err := only(n)
		if err != nil {
			return nil, err
		}

		e, err := l.lower(c, depth)
		if err != nil {
			return nil, err
		}

		closed := n.Rule == grammar.RuleExprClosed || n.Rule == grammar.RuleTermClosed

		return e.WithBrackets(closed), nil

	case grammar.RuleVariable:
		c, err := only(n)
		if err != nil {
			return nil, err
		}

		id, err := nameIdent(c)
		if err != nil {
			return nil, err
		}

		return fol.Token(fol.KindVariable, id)

	case grammar.RuleConstant:
		id, err := constantIdent(n)
		if err != nil {
			return nil, err
		}

		return fol.Token(fol.KindConstant, id)

	case grammar.RuleFuncPolish:
		return l.polish(n, fol.KindFunction, depth)

	case grammar.RuleRelnPolish:
		return l.polish(n, fol.KindRelation, depth)

	case grammar.RuleFuncInfix:
		return l.infix(n, fol.KindFunction, depth)

	case grammar.RuleRelnInfix:
		return l.infix(n, fol.KindRelation, depth)

	case grammar.RuleNot:
		ops, err := l.operands(n, depth, 1, 1)
		if err != nil {
			return nil, err
		}

		return fol.Not(ops[0]), nil

	case grammar.RuleAnd:
		ops, err := l.operands(n, depth, 2, -1)
		if err != nil {
			return nil, err
		}

		return fol.And(ops...)

	case grammar.RuleOr:
		ops, err := l.operands(n, depth, 2, -1)
		if err != nil {
			return nil, err
		}

		return fol.Or(ops...)

	case grammar.RuleImplies:
		ops, err := l.operands(n, depth, 2, 2)
		if err != nil {
			return nil, err
		}

		return fol.Implies(ops[0], ops[1]), nil

	case grammar.RuleIff:
		ops, err := l.operands(n, depth, 2, 2)
		if err != nil {
			return nil, err
		}

		return fol.Iff(ops[0], ops[1]), nil

	case grammar.RuleAll:
		ops, err := l.operands(n, depth, 2, 2)
		if err != nil {
			return nil, err
		}

		return fol.QuantifiedAll(ops[0], ops[1])

	case grammar.RuleExists:
		ops, err := l.operands(n, depth, 2, 2)
		if err != nil {
			return nil, err
		}

		return fol.QuantifiedExists(ops[0], ops[1])

	case grammar.RuleExprs, grammar.RuleTerms, grammar.RuleOp, grammar.RuleName,
		grammar.RuleSymb, grammar.RuleWord, grammar.RuleIndex:
		return nil, malformed(n, "not an expression")

	default:
		return nil, ErrUnknownRule.With(append(at(n), slog.String("rule", string(n.Rule)))...)
	}
}

// operands lowers the children of n one level down, requiring between lo
// and hi of them (hi < 0 for no upper bound).
func (l *lowering) operands(n *grammar.Node, depth, lo, hi int) ([]*fol.Expr, error) {
	if len(n.Children) < lo || hi >= 0 && len(n.Children) > hi {
		return nil, malformed(n, "wrong number of operands")
	}

	return l.each(n.Children, depth+1)
}

func (l *lowering) each(nodes []*grammar.Node, depth int) ([]*fol.Expr, error) {
	out := make([]*fol.Expr, len(nodes))

	for i, c := range nodes {
		e, err := l.lower(c, depth)
		if err != nil {
			return nil, err
		}

		out[i] = e
	}

	return out, nil
}

// polish lowers name(terms...).
func (l *lowering) polish(n *grammar.Node, head fol.Kind, depth int) (*fol.Expr, error) {
	name, args := n.Child(0), n.Child(1)
	if len(n.Children) != 2 || args.Rule != grammar.RuleTerms {
		return nil, malformed(n, "expected name and terms")
	}

	id, err := nameIdent(name)
	if err != nil {
		return nil, err
	}

	terms, err := l.each(args.Children, depth+1)
	if err != nil {
		return nil, err
	}

	return l.apply(n, head, id, fol.Prefix, terms)
}

// infix lowers "t op t op t ...". Every operator must decompose to the same
// identifier.
func (l *lowering) infix(n *grammar.Node, head fol.Kind, depth int) (*fol.Expr, error) {
	if len(n.Children) < 3 || len(n.Children)%2 == 0 {
		return nil, malformed(n, "expected alternating terms and operators")
	}

	var (
		ops   []fol.Ident
		terms []*grammar.Node
	)

	for i, c := range n.Children {
		if i%2 == 0 {
			terms = append(terms, c)

			continue
		}

		id, err := opIdent(c)
		if err != nil {
			return nil, err
		}

		if !slices.Contains(ops, id) {
			ops = append(ops, id)
		}
	}

	if len(ops) > 1 {
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = op.Symbol()
		}

		return nil, ErrAmbiguousOperator.With(
			append(at(n), slog.String("operators", strings.Join(names, " ")))...,
		)
	}

	args, err := l.each(terms, depth+1)
	if err != nil {
		return nil, err
	}

	return l.apply(n, head, ops[0], fol.Infix, args)
}

func (l *lowering) apply(
	n *grammar.Node,
	head fol.Kind,
	id fol.Ident,
	notation fol.Notation,
	terms []*fol.Expr,
) (*fol.Expr, error) {
	if want, ok := l.arity[id.Label()]; ok && want != len(terms) {
		return nil, ErrArityMismatch.With(append(at(n),
			slog.String("symbol", id.Symbol()),
			slog.Int("expected", want),
			slog.Int("got", len(terms)),
		)...)
	}

	sym, err := fol.Token(head, id)
	if err != nil {
		return nil, err
	}

	if head == fol.KindFunction {
		return fol.FunctionExpression(sym, notation, terms...)
	}

	return fol.RelationExpression(sym, notation, terms...)
}

// nameIdent decomposes a name node: a word or TeX-style symbol with an
// optional subscript. Symbols make the identifier generic.
func nameIdent(n *grammar.Node) (fol.Ident, error) {
	if n == nil || n.Rule != grammar.RuleName || len(n.Children) < 1 || len(n.Children) > 2 {
		return fol.Ident{}, malformed(n, "expected name")
	}

	base := n.Children[0]
	id := fol.Ident{Name: base.Text}

	switch base.Rule {
	case grammar.RuleWord:
	case grammar.RuleSymb:
		id.Generic = true
	default:
		return fol.Ident{}, malformed(base, "expected word or symbol")
	}

	if idx := n.Child(1); idx != nil {
		if idx.Rule != grammar.RuleIndex {
			return fol.Ident{}, malformed(idx, "expected index")
		}

		id.Index = idx.Text
	}

	return id, nil
}

// constantIdent decomposes "[i]", "\c[i]" and bare numerals. The index is
// the identity of the constant.
func constantIdent(n *grammar.Node) (fol.Ident, error) {
	id := fol.Ident{IndexLike: true}

	idx := n.Child(len(n.Children) - 1)
	if idx == nil || idx.Rule != grammar.RuleIndex || len(n.Children) > 2 {
		return fol.Ident{}, malformed(n, "expected constant index")
	}

	id.Index = idx.Text

	if len(n.Children) == 2 {
		symb := n.Children[0]
		if symb.Rule != grammar.RuleSymb {
			return fol.Ident{}, malformed(symb, "expected constant symbol")
		}

		id.Name = symb.Text
		id.Generic = true
	}

	return id, nil
}

// opIdent decomposes an operator: either a bare operator token or a name.
func opIdent(n *grammar.Node) (fol.Ident, error) {
	if n.Rule != grammar.RuleOp {
		return fol.Ident{}, malformed(n, "expected operator")
	}

	if len(n.Children) == 0 {
		if n.Text == "" {
			return fol.Ident{}, malformed(n, "empty operator")
		}

		return fol.Ident{Name: n.Text}, nil
	}

	c, err := only(n)
	if err != nil {
		return fol.Ident{}, err
	}

	return nameIdent(c)
}

func only(n *grammar.Node) (*grammar.Node, error) {
	if len(n.Children) != 1 {
		return nil, malformed(n, "expected exactly one child")
	}

	return n.Children[0], nil
}

func malformed(n *grammar.Node, reason string) error {
	attrs := []slog.Attr{slog.String("reason", reason)}
	if n != nil {
		attrs = append(attrs, slog.String("rule", string(n.Rule)))
		attrs = append(attrs, at(n)...)
	}

	return ErrMalformedTree.With(attrs...)
}

// at locates n in the source text.
func at(n *grammar.Node) []slog.Attr {
	return []slog.Attr{
		slog.Int("line", n.Pos.Line),
		slog.Int("column", n.Pos.Column),
	}
}
