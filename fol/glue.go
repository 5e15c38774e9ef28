package fol

import (
	"log/slog"
	"strings"
)

// Glue is a notation policy combining a node's own token with the rendered
// strings of its children.
type Glue uint8

const (
	// GluePolish concatenates the token and its parts: "!P(x)".
	GluePolish Glue = iota
	// GluePolishWithOuter applies the token to its parts: "f(x,y)".
	GluePolishWithOuter
	// GlueInfix joins the parts with the token: "a && b".
	GlueInfix
	// GlueInfixWithOuter is GlueInfix parenthesized when there is more than
	// one part: "(a && b)".
	GlueInfixWithOuter
	// GlueQuantifier binds a variable over a body: "all x. P(x)".
	GlueQuantifier
	// GlueQuantifierWithOuter is GlueQuantifier parenthesized.
	GlueQuantifierWithOuter

	glueCount
)

//nolint:gochecknoglobals
var glueName = [glueCount]string{
	GluePolish:              "polish",
	GluePolishWithOuter:     "polishWithOuter",
	GlueInfix:               "infix",
	GlueInfixWithOuter:      "infixWithOuter",
	GlueQuantifier:          "quantifier",
	GlueQuantifierWithOuter: "quantifierWithOuter",
}

// String returns the policy name, e.g. "infixWithOuter".
func (g Glue) String() string {
	if g >= glueCount {
		return "unknown"
	}

	return glueName[g]
}

// ParseGlue returns the policy named s, ignoring case.
func ParseGlue(s string) (Glue, error) {
	for g, name := range glueName {
		if strings.EqualFold(name, s) {
			return Glue(g), nil
		}
	}

	return 0, ErrInvalidGlue.With(slog.String("glue", s))
}

// Join renders token and parts according to g.
func (g Glue) Join(token string, parts ...string) string {
	switch g {
	case GluePolish:
		return token + strings.Join(parts, "")

	case GluePolishWithOuter:
		return token + "(" + strings.Join(parts, ",") + ")"

	case GlueInfix:
		return strings.Join(parts, " "+token+" ")

	case GlueInfixWithOuter:
		s := strings.Join(parts, " "+token+" ")
		if len(parts) > 1 {
			s = "(" + s + ")"
		}

		return s

	case GlueQuantifier, GlueQuantifierWithOuter:
		var bound, body string
		if len(parts) > 0 {
			bound = parts[0]
		}

		if len(parts) > 1 {
			body = parts[1]
		}

		s := token + " " + bound + ". " + body
		if g == GlueQuantifierWithOuter {
			s = "(" + s + ")"
		}

		return s

	default:
		panic(ErrInvalidGlue.With(slog.Int("glue", int(g))))
	}
}

// Projection selects which per-node string a rendering uses.
type Projection uint8

const (
	// Symbolic renders the machine-parseable symbols.
	Symbolic Projection = iota
	// Typeset renders the human-oriented display strings.
	Typeset
)

// Render returns the string form of e under projection p. The root is
// parenthesized according to outer; every child renders with its own flag,
// which construction sets.
func Render(e *Expr, p Projection, outer bool) string {
	if e == nil {
		return ""
	}

	token := e.symbol
	if p == Typeset {
		token = e.display
	}

	if len(e.children) == 0 {
		if e.kind == KindFunctionExpression {
			return token + "()"
		}

		return token
	}

	parts := make([]string, len(e.children))
	for i, c := range e.children {
		parts[i] = Render(c, p, c.brackets)
	}

	g := e.glue
	if outer {
		g = e.outerGlue
	}

	return g.Join(token, parts...)
}
