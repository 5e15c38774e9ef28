package grammar

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// DefaultMaxNesting bounds the recursion of the engine unless overridden
// with [WithMaxNesting].
const DefaultMaxNesting = 1000

// Grammar is a compiled lexicon bound to the formula engine. It is
// immutable and safe for concurrent use.
type Grammar struct {
	def        *lexer.StatefulDefinition
	roles      map[lexer.TokenType]string
	elided     map[lexer.TokenType]bool
	keywords   map[string]string
	lex        Lexicon
	maxNesting int
}

// Option configures a [Grammar] at compile time.
type Option func(*Grammar)

// WithMaxNesting limits how deeply the input may nest. A limit of zero or
// less disables the check.
func WithMaxNesting(n int) Option {
	return func(g *Grammar) { g.maxNesting = n }
}

// Compile validates lex and compiles its token rules.
func Compile(lex Lexicon, opts ...Option) (*Grammar, error) {
	if err := lex.Validate(); err != nil {
		return nil, err
	}

	rules := make([]lexer.SimpleRule, len(lex.Tokens))
	for i, rule := range lex.Tokens {
		rules[i] = lexer.SimpleRule{Name: ruleName(rule.Role), Pattern: rule.Pattern}
	}

	def, err := lexer.NewSimple(rules)
	if err != nil {
		return nil, ErrLexicon.Wrap(err)
	}

	g := &Grammar{
		def:        def,
		roles:      make(map[lexer.TokenType]string, len(rules)),
		elided:     make(map[lexer.TokenType]bool),
		keywords:   make(map[string]string, len(lex.Keywords)),
		lex:        lex,
		maxNesting: DefaultMaxNesting,
	}

	symbols := def.Symbols()

	for _, rule := range lex.Tokens {
		typ := symbols[ruleName(rule.Role)]
		g.roles[typ] = rule.Role
		g.elided[typ] = rule.Elide
	}

	for role, word := range lex.Keywords {
		g.keywords[word] = role
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Load reads a lexicon document from r and compiles it.
func Load(r io.Reader, opts ...Option) (*Grammar, error) {
	lex, err := ReadLexicon(r)
	if err != nil {
		return nil, err
	}

	return Compile(lex, opts...)
}

// Default compiles the built-in lexicon.
func Default(opts ...Option) (*Grammar, error) {
	return Load(bytes.NewReader(defaultLexicon), opts...)
}

// Lexicon returns a copy of the lexicon g was compiled from.
func (g *Grammar) Lexicon() Lexicon {
	lex := g.lex
	lex.Keywords = maps.Clone(g.lex.Keywords)
	lex.Tokens = append([]TokenRule(nil), g.lex.Tokens...)

	return lex
}

// MaxNesting returns the nesting limit of the engine.
func (g *Grammar) MaxNesting() int { return g.maxNesting }

// Parse returns the concrete parse tree of text. The root is an exprs node
// with one expr child per top-level expression; expressions are separated
// by ';' or a newline.
func (g *Grammar) Parse(text string) (*Node, error) {
	toks, err := g.tokenize(text)
	if err != nil {
		return nil, err
	}

	e := &engine{src: text, toks: toks, limit: g.maxNesting}

	return e.exprs()
}

// Keyword returns the spelling of a quantifier role ("all" or "exists") in
// this grammar, for completion and help text.
func (g *Grammar) Keyword(role string) string {
	if w := g.lex.Keywords[role]; w != "" {
		return w
	}

	for _, rule := range g.lex.Tokens {
		if rule.Role == role {
			return rule.Pattern
		}
	}

	return ""
}

type token struct {
	role string
	text string
	pos  lexer.Position
}

func (g *Grammar) tokenize(text string) ([]token, error) {
	lx, err := g.def.LexString("", text)
	if err != nil {
		return nil, lexError(text, err)
	}

	raw, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, lexError(text, err)
	}

	toks := make([]token, 0, len(raw))

	for _, t := range raw {
		if t.EOF() {
			toks = append(toks, token{role: roleEOF, pos: t.Pos})

			continue
		}

		if g.elided[t.Type] {
			continue
		}

		role := g.roles[t.Type]
		if role == roleWord {
			if kw, ok := g.keywords[t.Value]; ok {
				role = kw
			}
		}

		toks = append(toks, token{role: role, text: t.Value, pos: t.Pos})
	}

	return joinLines(toks), nil
}

// joinLines drops newlines that cannot end an expression: those inside
// parentheses or brackets and those adjacent to a token that needs another
// operand.
func joinLines(toks []token) []token {
	out := toks[:0]
	depth := 0

	for i, t := range toks {
		switch t.role {
		case roleLParen, roleLBracket:
			depth++
		case roleRParen, roleRBracket:
			depth = max(depth-1, 0)
		case roleNewline:
			if depth > 0 || len(out) > 0 && continuesAfter(out[len(out)-1].role) ||
				continuesBefore(nextRole(toks, i)) {
				continue
			}
		}

		out = append(out, t)
	}

	return out
}

func nextRole(toks []token, i int) string {
	for _, t := range toks[i+1:] {
		if t.role != roleNewline {
			return t.role
		}
	}

	return roleEOF
}

func continuesAfter(role string) bool {
	switch role {
	case roleIff, roleImplies, roleAnd, roleOr, roleNot, roleOperator,
		roleComma, roleDot, roleAll, roleExists:
		return true
	}

	return false
}

func continuesBefore(role string) bool {
	switch role {
	case roleIff, roleImplies, roleAnd, roleOr:
		return true
	}

	return false
}

// ruleName maps a role to the lexer rule name, which must be exported.
func ruleName(role string) string {
	if role == "" {
		return role
	}

	return strings.ToUpper(role[:1]) + role[1:]
}

func lexError(src string, err error) error {
	var le *lexer.Error
	if !errors.As(err, &le) {
		return ErrSyntax.Wrap(err)
	}

	found := "end of input"
	if r, _ := utf8.DecodeRuneInString(src[min(le.Pos.Offset, len(src)):]); r != utf8.RuneError {
		found = strconv.QuoteRune(r)
	}

	return syntaxError(src, le.Pos.Offset, found, "token")
}

func syntaxError(src string, offset int, found, expected string) error {
	line, col, snippet := locate(src, offset)

	return ErrSyntax.With(
		slog.Int("line", line),
		slog.Int("column", col),
		slog.String("found", found),
		slog.String("expected", expected),
		slog.String("snippet", snippet),
	).Wrap(errors.New(
		strconv.Itoa(line) + ":" + strconv.Itoa(col) +
			": expected " + expected + ", found " + found,
	))
}

// locate returns the 1-based line and rune column of offset in src, and the
// source line with a caret under the column.
func locate(src string, offset int) (line, col int, snippet string) {
	offset = min(max(offset, 0), len(src))

	start := strings.LastIndexByte(src[:offset], '\n') + 1

	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}

	var caret strings.Builder

	for _, r := range src[start:offset] {
		if r == '\t' {
			caret.WriteByte('\t')
		} else {
			caret.WriteByte(' ')
		}
	}

	caret.WriteByte('^')

	line = strings.Count(src[:offset], "\n") + 1
	col = utf8.RuneCountInString(src[start:offset]) + 1

	return line, col, src[start:end] + "\n" + caret.String()
}
