package grammar

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/repr"

	"github.com/ardnew/fol/pkg"
)

func mustDefault(t *testing.T, opts ...Option) *Grammar {
	t.Helper()

	g, err := Default(opts...)
	assert.NoError(t, err)

	return g
}

// inner strips the expr and expropen wrappers around n.
func inner(n *Node) *Node {
	for n != nil && (n.Rule == RuleExpr || n.Rule == RuleExprOpen) {
		n = n.Child(0)
	}

	return n
}

func parseOne(t *testing.T, g *Grammar, text string) *Node {
	t.Helper()

	root, err := g.Parse(text)
	assert.NoError(t, err, text)

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 expression in %q, got:\n%s", text, repr.String(root, repr.Indent("  ")))
	}

	return inner(root.Child(0))
}

func TestParse_PrefixRelation(t *testing.T) {
	n := parseOne(t, mustDefault(t), "P(x)")

	assert.Equal(t,
		`(relnpolish (name word:"P") (terms (term (termopen (variable (name word:"x"))))))`,
		n.String())
}

func TestParse_Connectives(t *testing.T) {
	g := mustDefault(t)

	tests := []struct {
		input string
		rule  Rule
		arity int
	}{
		{"a && b && c", RuleAnd, 3},
		{"a || b || c || d", RuleOr, 4},
		{"a && b || c", RuleOr, 2},
		{"a -> b -> c", RuleImplies, 2},
		{"a <-> b -> c", RuleIff, 2},
		{"!a", RuleNot, 1},
		{"!!a", RuleNot, 1},
		{"all x. P(x)", RuleQuantified, 1},
		{"a", RuleRelnPolish, 2},
		{"(a && b)", RuleExprClosed, 1},
		{"¬a ∧ b ∨ c → d ↔ e", RuleIff, 2},
		{"∀ x. ∃ y. R(x, y)", RuleQuantified, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := parseOne(t, g, tt.input)

			assert.Equal(t, tt.rule, n.Rule)
			assert.Equal(t, tt.arity, len(n.Children))
		})
	}
}

func TestParse_Associativity(t *testing.T) {
	g := mustDefault(t)

	n := parseOne(t, g, "a -> b -> c")
	assert.Equal(t, RuleRelnPolish, inner(n.Child(0)).Rule)
	assert.Equal(t, RuleImplies, inner(n.Child(1)).Rule)

	n = parseOne(t, g, "(a -> b) -> c")
	assert.Equal(t, RuleExprClosed, n.Child(0).Child(0).Rule)
	assert.Equal(t, RuleImplies, inner(n.Child(0).Child(0).Child(0)).Rule)
}

func TestParse_QuantifierBodyExtendsRight(t *testing.T) {
	n := parseOne(t, mustDefault(t), "exists x. P(x) && Q")

	q := n.Child(0)
	assert.Equal(t, RuleExists, q.Rule)
	assert.Equal(t, `(variable (name word:"x"))`, q.Child(0).String())
	assert.Equal(t, RuleAnd, inner(q.Child(1)).Rule)
}

func TestParse_Infix(t *testing.T) {
	g := mustDefault(t)

	n := parseOne(t, g, "a f b f c")
	assert.Equal(t, RuleRelnInfix, n.Rule)
	assert.Equal(t, 5, len(n.Children))
	assert.Equal(t, `(op (name word:"f"))`, n.Child(1).String())
	assert.Equal(t, `(op (name word:"f"))`, n.Child(3).String())

	n = parseOne(t, g, "(x + y) = z")
	assert.Equal(t, RuleRelnInfix, n.Rule)
	assert.Equal(t, RuleTermClosed, n.Child(0).Child(0).Rule)
	assert.Equal(t, `op:"="`, n.Child(1).String())

	funcinfix := n.Child(0).Child(0).Child(0).Child(0).Child(0)
	assert.Equal(t, RuleFuncInfix, funcinfix.Rule)
	assert.Equal(t, 3, len(funcinfix.Children))

	n = parseOne(t, g, "f(x) != y")
	assert.Equal(t, RuleRelnInfix, n.Rule)
	assert.Equal(t, RuleFuncPolish, n.Child(0).Child(0).Child(0).Rule)
	assert.Equal(t, `op:"!="`, n.Child(1).String())

	n = parseOne(t, g, `x \circ y`)
	assert.Equal(t, `(op (name symb:"\\circ"))`, n.Child(1).String())
}

func TestParse_Terms(t *testing.T) {
	n := parseOne(t, mustDefault(t), `P(x + y, f(z), [0], \c[1], 2)`)

	assert.Equal(t, RuleRelnPolish, n.Rule)

	args := n.Child(1)
	assert.Equal(t, 5, len(args.Children))

	kinds := make([]Rule, len(args.Children))
	for i, a := range args.Children {
		kinds[i] = a.Child(0).Child(0).Rule
	}

	assert.Equal(t, []Rule{RuleFuncInfix, RuleFuncPolish, RuleConstant, RuleConstant, RuleConstant}, kinds)
	assert.Equal(t, `(constant index:"0")`, args.Child(2).Child(0).Child(0).String())
	assert.Equal(t, `(constant symb:"\\c" index:"1")`, args.Child(3).Child(0).Child(0).String())
	assert.Equal(t, `(constant index:"2")`, args.Child(4).Child(0).Child(0).String())
}

func TestParse_Names(t *testing.T) {
	g := mustDefault(t)

	n := parseOne(t, g, `R(x_1, y_{ab}, \alpha_2, P_{i+1})`)

	want := []string{
		`(name word:"x" index:"1")`,
		`(name word:"y" index:"ab")`,
		`(name symb:"\\alpha" index:"2")`,
		`(name word:"P" index:"i+1")`,
	}

	for i, w := range want {
		assert.Equal(t, w, n.Child(1).Child(i).Child(0).Child(0).Child(0).String())
	}

	_, err := g.Parse("x _1")
	assert.IsError(t, err, ErrSyntax)
}

func TestParse_Separators(t *testing.T) {
	g := mustDefault(t)

	tests := []struct {
		input string
		count int
	}{
		{"", 0},
		{"\n;\n", 0},
		{"a; b\nc", 3},
		{"a;;b;", 2},
		{"a &&\n  b", 1},
		{"a\n  && b", 1},
		{"(a\n&&\nb)", 1},
		{"P(x,\n y)", 1},
		{"all x.\n P(x)", 1},
		{"a # first\nb # second", 2},
		{"# only a comment", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := g.Parse(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, RuleExprs, root.Rule)
			assert.Equal(t, tt.count, len(root.Children))
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	g := mustDefault(t)

	tests := []struct {
		input    string
		line     int64
		column   int64
		found    string
		expected string
	}{
		{"P(x", 1, 4, "end of input", "',' or ')'"},
		{"a && && b", 1, 6, `"&&"`, "formula"},
		{"x $ y", 1, 3, "'$'", "token"},
		{"a b", 1, 4, "end of input", "term"},
		{"all", 1, 4, "end of input", "bound variable"},
		{"all x P(x)", 1, 7, `"P"`, "'.'"},
		{"[0]", 1, 4, "end of input", "operator"},
		{"a\n)", 2, 1, `")"`, "formula"},
		{"P(x) Q(y) R", 1, 12, "end of input", "term"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := g.Parse(tt.input)
			assert.IsError(t, err, ErrSyntax)
			assert.False(t, pkg.IsDefect(err))

			var e *pkg.Error
			assert.True(t, errors.As(err, &e))

			line, _ := e.Attr("line")
			column, _ := e.Attr("column")
			found, _ := e.Attr("found")
			expected, _ := e.Attr("expected")

			assert.Equal(t, tt.line, line.Int64())
			assert.Equal(t, tt.column, column.Int64())
			assert.Equal(t, tt.found, found.String())
			assert.Equal(t, tt.expected, expected.String())
		})
	}
}

func TestParse_Snippet(t *testing.T) {
	_, err := mustDefault(t).Parse("a &&\n\tP(x")

	v, ok := pkg.AttrOf(err, "snippet")
	assert.True(t, ok)
	assert.Equal(t, "\tP(x\n\t   ^", v.String())
}

func TestParse_Nesting(t *testing.T) {
	g := mustDefault(t, WithMaxNesting(8))
	assert.Equal(t, 8, g.MaxNesting())

	_, err := g.Parse("!!!!!!!!!!!!a")
	assert.IsError(t, err, ErrNesting)

	_, err = g.Parse("((((((((((((a))))))))))))")
	assert.IsError(t, err, ErrNesting)

	_, err = g.Parse("!!a")
	assert.NoError(t, err)

	_, err = mustDefault(t, WithMaxNesting(0)).Parse("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!a")
	assert.NoError(t, err)
}

func TestParse_Concurrent(t *testing.T) {
	g := mustDefault(t)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 50 {
				n, err := g.Parse("all x. P(x) -> exists y. R(x, y)")
				if err != nil || len(n.Children) != 1 {
					t.Errorf("unexpected result %v, %v", n, err)

					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestLexicon_Validate(t *testing.T) {
	base, err := ReadLexicon(bytes.NewReader(DefaultLexicon()))
	assert.NoError(t, err)
	assert.NoError(t, base.Validate())

	tests := []struct {
		name   string
		modify func(*Lexicon)
	}{
		{"version", func(l *Lexicon) { l.Version = 2 }},
		{"missing role", func(l *Lexicon) { l.Tokens = l.Tokens[:len(l.Tokens)-1] }},
		{"duplicate role", func(l *Lexicon) { l.Tokens = append(l.Tokens, l.Tokens[len(l.Tokens)-1]) }},
		{"unknown role", func(l *Lexicon) { l.Tokens = append(l.Tokens, TokenRule{Role: "lambda", Pattern: `\\`}) }},
		{"empty match", func(l *Lexicon) { l.Tokens[0].Pattern = `#*` }},
		{"bad pattern", func(l *Lexicon) { l.Tokens[0].Pattern = `(` }},
		{"unknown keyword", func(l *Lexicon) { l.Keywords["forall"] = "forall" }},
		{"no quantifier", func(l *Lexicon) {
			delete(l.Keywords, "exists")
			l.Tokens = slicesDelete(l.Tokens, "exists")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex, err := ReadLexicon(bytes.NewReader(DefaultLexicon()))
			assert.NoError(t, err)

			tt.modify(&lex)

			_, err = Compile(lex)
			assert.IsError(t, err, ErrLexicon)
		})
	}
}

func slicesDelete(rules []TokenRule, role string) []TokenRule {
	out := rules[:0]
	for _, r := range rules {
		if r.Role != role {
			out = append(out, r)
		}
	}

	return out
}

func TestLoad_Custom(t *testing.T) {
	lex, err := ReadLexicon(bytes.NewReader(DefaultLexicon()))
	assert.NoError(t, err)

	lex.Keywords = map[string]string{"all": "forall", "exists": "some"}

	g, err := Compile(lex)
	assert.NoError(t, err)
	assert.Equal(t, "forall", g.Keyword("all"))

	n := parseOne(t, g, "forall x. some y. R(x, y)")
	assert.Equal(t, RuleQuantified, n.Rule)

	// "all" is an ordinary name under this lexicon.
	n = parseOne(t, g, "all(x)")
	assert.Equal(t, RuleRelnPolish, n.Rule)

	_, err = Load(bytes.NewReader([]byte("version: 1\nbogus: true\n")))
	assert.IsError(t, err, ErrLexicon)
}

func TestGrammar_LexiconIsCopy(t *testing.T) {
	g := mustDefault(t)

	lex := g.Lexicon()
	lex.Keywords["all"] = "every"
	lex.Tokens[0].Pattern = "x"

	assert.Equal(t, "all", g.Keyword("all"))
	assert.NotEqual(t, "x", g.Lexicon().Tokens[0].Pattern)
}
