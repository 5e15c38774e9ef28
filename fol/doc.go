// Package fol represents first-order logic formulas and terms.
//
// An [Expr] is an immutable tree node whose [Kind] fixes its arity. Nodes are
// assembled bottom-up with the constructors of this package:
//
//	x := fol.Variable("x")
//	px := fol.Must(fol.RelationExpression(fol.Relation("P"), fol.Prefix, x))
//	all := fol.Must(fol.QuantifiedAll(x, px))
//	all.String()  // all x. P(x)
//	all.Typeset() // ∀ x. P(x)
//
// Every node carries two tokens: a symbol, which the parser in package parse
// reads back, and a display string meant for people. [Render] combines a
// node's token with its rendered children according to the node's [Glue].
//
// Equality ([Expr.Equal]) compares kinds, arities and labels only, so two
// trees that print differently can still be equal.
package fol
