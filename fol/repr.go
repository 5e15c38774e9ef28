package fol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// Keys of the map representation of an Expr.
const (
	keyKind      = "kind"
	keyLabel     = "label"
	keySymbol    = "symbol"
	keyDisplay   = "display"
	keyBrackets  = "outerBrackets"
	keyGlue      = "glueOption"
	keyOuterGlue = "glueOuterOption"
	keyParts     = "parts"
)

// Map returns a generic representation of e suitable for JSON or YAML
// encoding. [FromMap] reverses it.
func (e *Expr) Map() map[string]any {
	parts := make([]any, len(e.children))
	for i, c := range e.children {
		parts[i] = c.Map()
	}

	return map[string]any{
		keyKind:      e.kind.String(),
		keyLabel:     e.label,
		keySymbol:    e.symbol,
		keyDisplay:   e.display,
		keyBrackets:  e.brackets,
		keyGlue:      e.glue.String(),
		keyOuterGlue: e.outerGlue.String(),
		keyParts:     parts,
	}
}

// FromMap rebuilds an Expr from the representation produced by [Expr.Map].
// Kind, arity and glue names are validated; absent glue options default to
// those of the kind.
func FromMap(m map[string]any) (*Expr, error) {
	return fromMap(m, "$")
}

func fromMap(m map[string]any, path string) (*Expr, error) {
	fail := func(reason string, attrs ...slog.Attr) error {
		return ErrDecode.With(append([]slog.Attr{
			slog.String("path", path),
			slog.String("reason", reason),
		}, attrs...)...)
	}

	name, ok := m[keyKind].(string)
	if !ok {
		return nil, fail("missing kind")
	}

	kind, err := ParseKind(name)
	if err != nil {
		return nil, ErrDecode.With(slog.String("path", path)).Wrap(err)
	}

	s := shapes[kind]
	e := &Expr{
		kind:      kind,
		symbol:    s.symbol,
		display:   s.display,
		glue:      s.glue,
		outerGlue: s.outerGlue,
	}

	for key, dst := range map[string]*string{
		keyLabel:   &e.label,
		keySymbol:  &e.symbol,
		keyDisplay: &e.display,
	} {
		switch v := m[key].(type) {
		case nil:
		case string:
			*dst = v
		default:
			return nil, fail("not a string", slog.String("key", key))
		}
	}

	if v, ok := m[keyBrackets]; ok {
		if e.brackets, ok = v.(bool); !ok {
			return nil, fail("not a bool", slog.String("key", keyBrackets))
		}
	}

	for key, dst := range map[string]*Glue{
		keyGlue:      &e.glue,
		keyOuterGlue: &e.outerGlue,
	} {
		v, ok := m[key]
		if !ok {
			continue
		}

		str, ok := v.(string)
		if !ok {
			return nil, fail("not a string", slog.String("key", key))
		}

		if *dst, err = ParseGlue(str); err != nil {
			return nil, fail("unknown glue option", slog.String("key", key), slog.String("glue", str))
		}
	}

	var parts []any

	switch v := m[keyParts].(type) {
	case nil:
	case []any:
		parts = v
	default:
		return nil, fail("parts is not a list")
	}

	if !kind.arityOK(len(parts)) {
		return nil, ErrInvalidArity.With(
			slog.String("path", path),
			slog.String("kind", kind.String()),
			slog.Int("arity", len(parts)),
		)
	}

	e.children = make([]*Expr, len(parts))
	for i, p := range parts {
		sub, ok := asMap(p)
		if !ok {
			return nil, fail("part is not a mapping", slog.Int("index", i))
		}

		if e.children[i], err = fromMap(sub, fmt.Sprintf("%s.parts[%d]", path, i)); err != nil {
			return nil, err
		}
	}

	if len(e.children) == 0 {
		e.children = nil
	}

	return e, nil
}

// asMap accepts the mapping types produced by the JSON and YAML decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}

		return out, true
	default:
		return nil, false
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Expr) MarshalJSON() ([]byte, error) { return json.Marshal(e.Map()) }

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return ErrDecode.Wrap(err)
	}

	d, err := FromMap(m)
	if err != nil {
		return err
	}

	*e = *d

	return nil
}

// EncodeJSON writes the representation of exprs to w as a JSON array.
func EncodeJSON(w io.Writer, indent int, exprs ...*Expr) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", string(bytes.Repeat([]byte{' '}, indent)))
	}

	return enc.Encode(maps(exprs))
}

// EncodeYAML writes the representation of exprs to w as a YAML sequence.
// An indent of zero or less selects flow style.
func EncodeYAML(ctx context.Context, w io.Writer, indent int, exprs ...*Expr) error {
	opts := []yaml.EncodeOption{yaml.Flow(true)}
	if indent > 0 {
		opts = []yaml.EncodeOption{yaml.Indent(indent), yaml.IndentSequence(true)}
	}

	data, err := yaml.MarshalContext(ctx, maps(exprs), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// DecodeYAML reads a YAML document holding either a single expression
// mapping or a sequence of them.
func DecodeYAML(ctx context.Context, r io.Reader) ([]*Expr, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var doc any
	if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	items, ok := doc.([]any)
	if !ok {
		items = []any{doc}
	}

	out := make([]*Expr, 0, len(items))

	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, ErrDecode.With(
				slog.Int("index", i),
				slog.String("reason", "not a mapping"),
			)
		}

		e, err := FromMap(m)
		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, nil
}

func maps(exprs []*Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = e.Map()
	}

	return out
}
