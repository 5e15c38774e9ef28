package fol

import (
	"log/slog"
	"strings"
)

// Kind identifies the syntactic category of an [Expr].
type Kind uint8

const (
	KindVariable Kind = iota
	KindConstant
	KindFunction
	KindRelation
	KindFunctionExpression
	KindRelationExpression
	KindNot
	KindAnd
	KindOr
	KindImplies
	KindIff
	KindAll
	KindExists

	kindCount
)

// unbounded marks a shape without an upper arity limit.
const unbounded = -1

// shape is the fixed structure shared by every node of a kind.
type shape struct {
	name      string
	symbol    string
	display   string
	minArity  int
	maxArity  int
	labelled  bool
	glue      Glue
	outerGlue Glue
}

//nolint:gochecknoglobals
var shapes = [kindCount]shape{
	KindVariable:           {name: "variable", labelled: true},
	KindConstant:           {name: "constant", labelled: true},
	KindFunction:           {name: "function", labelled: true},
	KindRelation:           {name: "relation", labelled: true},
	KindFunctionExpression: {name: "functionexpression", maxArity: unbounded, labelled: true, glue: GluePolishWithOuter, outerGlue: GluePolishWithOuter},
	KindRelationExpression: {name: "relationexpression", maxArity: unbounded, labelled: true, glue: GluePolishWithOuter, outerGlue: GluePolishWithOuter},
	KindNot:                {name: "not", symbol: "!", display: "¬", minArity: 1, maxArity: 1},
	KindAnd:                {name: "and", symbol: "&&", display: "∧", minArity: 2, maxArity: unbounded, glue: GlueInfix, outerGlue: GlueInfixWithOuter},
	KindOr:                 {name: "or", symbol: "||", display: "∨", minArity: 2, maxArity: unbounded, glue: GlueInfix, outerGlue: GlueInfixWithOuter},
	KindImplies:            {name: "implies", symbol: "->", display: "→", minArity: 2, maxArity: 2, glue: GlueInfix, outerGlue: GlueInfixWithOuter},
	KindIff:                {name: "iff", symbol: "<->", display: "↔", minArity: 2, maxArity: 2, glue: GlueInfix, outerGlue: GlueInfixWithOuter},
	KindAll:                {name: "all", symbol: "all", display: "∀", minArity: 2, maxArity: 2, glue: GlueQuantifier, outerGlue: GlueQuantifierWithOuter},
	KindExists:             {name: "exists", symbol: "exists", display: "∃", minArity: 2, maxArity: 2, glue: GlueQuantifier, outerGlue: GlueQuantifierWithOuter},
}

// String returns the lowercase tag of k, e.g. "relationexpression".
func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}

	return shapes[k].name
}

func (k Kind) valid() bool { return k < kindCount }

// ParseKind returns the Kind whose tag is s, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k := range kindCount {
		if strings.EqualFold(shapes[k].name, s) {
			return k, nil
		}
	}

	return 0, ErrInvalidKind.With(slog.String("kind", s))
}

// IsLabelled reports whether nodes of kind k compare by label.
func (k Kind) IsLabelled() bool { return k.valid() && shapes[k].labelled }

// IsToken reports whether k is one of the 0-ary symbol kinds.
func (k Kind) IsToken() bool { return k <= KindRelation }

// IsApplication reports whether k applies a function or relation symbol.
func (k Kind) IsApplication() bool {
	return k == KindFunctionExpression || k == KindRelationExpression
}

// IsTerm reports whether nodes of kind k denote objects of the domain.
func (k Kind) IsTerm() bool {
	return k == KindVariable || k == KindConstant || k == KindFunctionExpression
}

// IsAtomic reports whether k is an atomic formula.
func (k Kind) IsAtomic() bool { return k == KindRelationExpression }

// IsConnective reports whether k is a propositional connective.
func (k Kind) IsConnective() bool { return k >= KindNot && k <= KindIff }

// IsQuantifier reports whether k binds a variable.
func (k Kind) IsQuantifier() bool { return k == KindAll || k == KindExists }

// IsFormula reports whether nodes of kind k denote truth values.
func (k Kind) IsFormula() bool {
	return k.IsAtomic() || k.IsConnective() || k.IsQuantifier()
}

// arityOK reports whether n children fit the shape of k.
func (k Kind) arityOK(n int) bool {
	s := shapes[k]

	return n >= s.minArity && (s.maxArity == unbounded || n <= s.maxArity)
}
