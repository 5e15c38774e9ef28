package fol

import (
	"log/slog"

	"github.com/ardnew/fol/pkg"
)

// Notation selects how an application renders.
type Notation uint8

const (
	// Prefix writes the symbol before its parenthesized arguments: f(x,y).
	Prefix Notation = iota
	// Infix writes the symbol between the arguments: x f y.
	Infix
)

func (n Notation) glue() (glue, outer Glue) {
	if n == Infix {
		return GlueInfix, GlueInfixWithOuter
	}

	return GluePolishWithOuter, GluePolishWithOuter
}

// Variable returns a variable named name. Variable, Constant, Function and
// Relation do not validate their options; use [Token] for identifiers that
// must render to parseable text.
func Variable(name string, opts ...IdentOption) *Expr {
	return token(KindVariable, MakeIdent(name, opts...))
}

// Constant returns a constant named name. Constants written as a bare
// position are built with IndexLike and an empty name:
//
//	Constant("", WithIndex("0"), IndexLike()) // [0]
func Constant(name string, opts ...IdentOption) *Expr {
	return token(KindConstant, MakeIdent(name, opts...))
}

// Function returns a function symbol named name.
func Function(name string, opts ...IdentOption) *Expr {
	return token(KindFunction, MakeIdent(name, opts...))
}

// Relation returns a relation symbol named name.
func Relation(name string, opts ...IdentOption) *Expr {
	return token(KindRelation, MakeIdent(name, opts...))
}

// Token returns the 0-ary node of kind k identified by id. It fails with
// ErrKindMismatch if k is not a token kind, and with ErrInvalidIdent if id
// would not parse back as a k: an index-like identifier that is not a
// constant or has no index, a generic name that is not a \command, or an
// empty name.
func Token(k Kind, id Ident) (*Expr, error) {
	if !k.IsToken() {
		return nil, ErrKindMismatch.With(
			slog.String("expected", "token"),
			slog.String("kind", k.String()),
		)
	}

	if err := id.check(k); err != nil {
		return nil, err
	}

	return token(k, id), nil
}

func token(k Kind, id Ident) *Expr {
	return &Expr{
		kind:    k,
		label:   id.Label(),
		symbol:  id.Symbol(),
		display: id.Display(),
	}
}

// FunctionExpression applies the function symbol f to terms.
func FunctionExpression(f *Expr, n Notation, terms ...*Expr) (*Expr, error) {
	return apply(KindFunctionExpression, KindFunction, f, n, terms)
}

// RelationExpression applies the relation symbol r to terms.
func RelationExpression(r *Expr, n Notation, terms ...*Expr) (*Expr, error) {
	return apply(KindRelationExpression, KindRelation, r, n, terms)
}

func apply(k, head Kind, sym *Expr, n Notation, terms []*Expr) (*Expr, error) {
	if sym == nil || sym.kind != head {
		return nil, mismatch(head.String(), sym)
	}

	for _, t := range terms {
		if t == nil || !t.kind.IsTerm() {
			return nil, mismatch("term", t).With(slog.String("symbol", sym.symbol))
		}
	}

	glue, outer := n.glue()

	return &Expr{
		kind:      k,
		children:  attach(terms),
		label:     sym.label,
		symbol:    sym.symbol,
		display:   sym.display,
		glue:      glue,
		outerGlue: outer,
	}, nil
}

// Not returns the negation of a.
func Not(a *Expr) *Expr { return connective(KindNot, a) }

// Implies returns the implication a -> b.
func Implies(a, b *Expr) *Expr { return connective(KindImplies, a, b) }

// Iff returns the biconditional a <-> b.
func Iff(a, b *Expr) *Expr { return connective(KindIff, a, b) }

// And returns the conjunction of operands. A single operand is returned as
// is; no operands fail with ErrInvalidArity.
func And(operands ...*Expr) (*Expr, error) {
	return associative(KindAnd, operands)
}

// Or returns the disjunction of operands. A single operand is returned as
// is; no operands fail with ErrInvalidArity.
func Or(operands ...*Expr) (*Expr, error) {
	return associative(KindOr, operands)
}

func associative(k Kind, operands []*Expr) (*Expr, error) {
	switch len(operands) {
	case 0:
		return nil, ErrInvalidArity.With(
			slog.String("kind", k.String()),
			slog.Int("arity", 0),
		)
	case 1:
		return operands[0], nil
	default:
		return connective(k, operands...), nil
	}
}

func connective(k Kind, operands ...*Expr) *Expr {
	s := shapes[k]

	return &Expr{
		kind:      k,
		children:  attach(operands),
		symbol:    s.symbol,
		display:   s.display,
		glue:      s.glue,
		outerGlue: s.outerGlue,
	}
}

// QuantifiedAll returns the universal quantification of body over x.
func QuantifiedAll(x, body *Expr) (*Expr, error) {
	return quantified(KindAll, x, body)
}

// QuantifiedExists returns the existential quantification of body over x.
func QuantifiedExists(x, body *Expr) (*Expr, error) {
	return quantified(KindExists, x, body)
}

func quantified(k Kind, x, body *Expr) (*Expr, error) {
	if x == nil || x.kind != KindVariable {
		return nil, mismatch(KindVariable.String(), x).With(
			slog.String("quantifier", k.String()),
		)
	}

	if body == nil {
		return nil, mismatch("formula", body).With(
			slog.String("quantifier", k.String()),
		)
	}

	return connective(k, x, body), nil
}

// Must returns e, panicking if err is not nil.
func Must(e *Expr, err error) *Expr {
	if err != nil {
		panic(err)
	}

	return e
}

// attach copies nodes for a new parent, marking each to show its brackets.
func attach(nodes []*Expr) []*Expr {
	out := make([]*Expr, len(nodes))
	for i, n := range nodes {
		c := *n
		c.brackets = true
		out[i] = &c
	}

	return out
}

func mismatch(expected string, got *Expr) *pkg.Error {
	kind := "<nil>"
	if got != nil {
		kind = got.kind.String()
	}

	return ErrKindMismatch.With(
		slog.String("expected", expected),
		slog.String("kind", kind),
	)
}
