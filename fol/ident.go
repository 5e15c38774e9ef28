package fol

import (
	"log/slog"
	"strings"
)

// Ident is a decomposed identifier: a base name with an optional index.
//
// An index-like index is the whole identity of the token (a bracketed
// position such as "[0]"); otherwise the index is a subscript of the name
// ("x_1"). A generic identifier is named by a TeX-style command ("\alpha")
// and compares by its index alone. Only constants are index-like.
type Ident struct {
	Name      string
	Index     string
	IndexLike bool
	Generic   bool
}

// Label returns the string used for equality.
func (id Ident) Label() string {
	switch {
	case id.Index == "":
		return id.Name
	case id.IndexLike || id.Generic:
		return id.Index
	default:
		return id.Name + "_" + id.Index
	}
}

// Symbol returns the machine-parseable form.
func (id Ident) Symbol() string {
	switch {
	case id.Index == "":
		return id.Name
	case id.IndexLike:
		return id.bracketed()
	case isPlainIndex(id.Index):
		return id.Name + "_" + id.Index
	default:
		return id.Name + "_{" + id.Index + "}"
	}
}

// Display returns the typeset form.
func (id Ident) Display() string {
	switch {
	case id.Index == "":
		return id.Name
	case id.IndexLike:
		return id.bracketed()
	default:
		return id.Name + "_{" + id.Index + "}"
	}
}

// bracketed folds the name in only for generic identifiers.
func (id Ident) bracketed() string {
	if id.Generic {
		return id.Name + "[" + id.Index + "]"
	}

	return "[" + id.Index + "]"
}

func (id Ident) String() string { return id.Symbol() }

// check reports combinations whose symbol does not read back as a token of
// kind k.
func (id Ident) check(k Kind) error {
	var reason string

	switch {
	case id.IndexLike && k != KindConstant:
		reason = "index-like identifier on non-constant"
	case id.IndexLike && id.Index == "":
		reason = "index-like identifier without index"
	case id.Generic && !strings.HasPrefix(id.Name, `\`):
		reason = `generic name is not a \command`
	case !id.IndexLike && id.Name == "":
		reason = "empty name"
	default:
		return nil
	}

	return ErrInvalidIdent.With(
		slog.String("reason", reason),
		slog.String("kind", k.String()),
		slog.String("name", id.Name),
		slog.String("index", id.Index),
	)
}

func isPlainIndex(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) < 0
}

// IdentOption refines the identifier of a token constructor.
type IdentOption func(Ident) Ident

// WithIndex attaches an index to the identifier.
func WithIndex(index string) IdentOption {
	return func(id Ident) Ident {
		id.Index = index

		return id
	}
}

// IndexLike marks the index as the whole identity of the token.
func IndexLike() IdentOption {
	return func(id Ident) Ident {
		id.IndexLike = true

		return id
	}
}

// Generic marks the name as a generic placeholder compared by index only.
// The name must be a TeX-style command such as "\alpha".
func Generic() IdentOption {
	return func(id Ident) Ident {
		id.Generic = true

		return id
	}
}

// MakeIdent builds an Ident named name refined by opts.
func MakeIdent(name string, opts ...IdentOption) Ident {
	id := Ident{Name: name}
	for _, opt := range opts {
		id = opt(id)
	}

	return id
}
