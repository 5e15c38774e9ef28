package fol

import (
	"iter"
	"log/slog"
)

// Expr is an immutable node of a formula or term tree.
//
// Exprs are built by the constructors of this package. Children are private
// copies owned by their parent, so an Expr can be shared freely once built.
type Expr struct {
	children  []*Expr
	label     string
	symbol    string
	display   string
	kind      Kind
	glue      Glue
	outerGlue Glue
	brackets  bool
}

// Kind returns the syntactic category of e.
func (e *Expr) Kind() Kind { return e.kind }

// Label returns the identity of a labelled node. It is empty for
// connectives and quantifiers.
func (e *Expr) Label() string { return e.label }

// Symbol returns the machine-parseable token of e itself.
func (e *Expr) Symbol() string { return e.symbol }

// Display returns the typeset token of e itself.
func (e *Expr) Display() string { return e.display }

// IsLabelled reports whether e takes part in name-based equality.
func (e *Expr) IsLabelled() bool { return e.kind.IsLabelled() }

// Arity returns the number of children.
func (e *Expr) Arity() int { return len(e.children) }

// Glue returns the policy used to render e without outer brackets.
func (e *Expr) Glue() Glue { return e.glue }

// OuterGlue returns the policy used to render e with outer brackets.
func (e *Expr) OuterGlue() Glue { return e.outerGlue }

// Brackets reports whether e renders with outer brackets by default.
func (e *Expr) Brackets() bool { return e.brackets }

// WithBrackets returns a copy of e whose default bracket flag is show.
func (e *Expr) WithBrackets(show bool) *Expr {
	c := *e
	c.brackets = show

	return &c
}

// Child returns the i'th child of e.
func (e *Expr) Child(i int) (*Expr, error) {
	if i < 0 || i >= len(e.children) {
		return nil, ErrIndexOutOfRange.With(
			slog.Int("index", i),
			slog.Int("arity", len(e.children)),
			slog.String("kind", e.kind.String()),
		)
	}

	return e.children[i], nil
}

// Children returns an iterator over the index and node of each child.
func (e *Expr) Children() iter.Seq2[int, *Expr] {
	return func(yield func(int, *Expr) bool) {
		for i, c := range e.children {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Bound returns the variable bound by a quantifier, or nil.
func (e *Expr) Bound() *Expr {
	if !e.kind.IsQuantifier() {
		return nil
	}

	return e.children[0]
}

// Body returns the scope of a quantifier, or nil.
func (e *Expr) Body() *Expr {
	if !e.kind.IsQuantifier() {
		return nil
	}

	return e.children[1]
}

// Equal reports whether e and o have the same shape and names. Rendering
// fields (symbol, display, glue and brackets) are ignored.
func (e *Expr) Equal(o *Expr) bool {
	if e == nil || o == nil {
		return e == o
	}

	if e.kind != o.kind || len(e.children) != len(o.children) {
		return false
	}

	if e.IsLabelled() && e.label != o.label {
		return false
	}

	for i, c := range e.children {
		if !c.Equal(o.children[i]) {
			return false
		}
	}

	return true
}

// Depth returns 0 for leaves and one more than the deepest child otherwise.
func (e *Expr) Depth() int {
	if len(e.children) == 0 {
		return 0
	}

	d := 0
	for _, c := range e.children {
		d = max(d, c.Depth())
	}

	return d + 1
}

// Clone returns a deep copy of e.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}

	c := *e
	if e.children != nil {
		c.children = make([]*Expr, len(e.children))
		for i, child := range e.children {
			c.children[i] = child.Clone()
		}
	}

	return &c
}

// String renders e symbolically, honouring its bracket flag.
func (e *Expr) String() string { return Render(e, Symbolic, e.brackets) }

// Typeset renders e with display strings, honouring its bracket flag.
func (e *Expr) Typeset() string { return Render(e, Typeset, e.brackets) }

// LogValue implements slog.LogValuer.
func (e *Expr) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}

	attrs := []slog.Attr{
		slog.String("kind", e.kind.String()),
		slog.String("expr", e.String()),
	}

	if e.IsLabelled() {
		attrs = append(attrs, slog.String("label", e.label))
	}

	return slog.GroupValue(attrs...)
}
