// Package parse turns formula text into [fol.Expr] trees.
//
// A [Parser] pairs a compiled [grammar.Grammar] with lowering options. The
// grammar produces a concrete parse tree; lowering walks it bottom-up and
// builds each node with the fol constructors:
//
//	g, err := grammar.Default()
//	if err != nil {
//		return err
//	}
//
//	p := parse.New(g)
//	e, err := p.ParseOne(ctx, "all x. P(x) -> Q(x)")
//
// Infix applications must use one operator throughout: "a f b f c" is the
// ternary application of f, while "a f b g c" fails with
// [ErrAmbiguousOperator].
package parse
