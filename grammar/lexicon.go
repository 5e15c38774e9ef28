package grammar

import (
	_ "embed"
	"io"
	"log/slog"
	"regexp"
	"slices"

	"github.com/goccy/go-yaml"
)

// LexiconVersion is the lexicon document version this package understands.
const LexiconVersion = 1

//go:embed fol.yaml
var defaultLexicon []byte

// DefaultLexicon returns the source of the built-in lexicon document.
func DefaultLexicon() []byte { return slices.Clone(defaultLexicon) }

// Lexicon is the token-level definition of the formula language.
type Lexicon struct {
	// Keywords maps a quantifier role (all, exists) to the word spelling it.
	Keywords map[string]string `yaml:"keywords"`
	Name     string            `yaml:"name"`
	Tokens   []TokenRule       `yaml:"tokens"`
	Version  int               `yaml:"version"`
}

// TokenRule is one lexer rule: a regular expression producing tokens that
// play role in the grammar.
type TokenRule struct {
	Role    string `yaml:"role"`
	Pattern string `yaml:"pattern"`
	Elide   bool   `yaml:"elide"`
}

// Token roles understood by the engine.
const (
	roleIff      = "iff"
	roleImplies  = "implies"
	roleAnd      = "and"
	roleOr       = "or"
	roleNot      = "not"
	roleAll      = "all"
	roleExists   = "exists"
	roleOperator = "operator"
	roleSep      = "sep"
	roleNewline  = "newline"
	roleLParen   = "lparen"
	roleRParen   = "rparen"
	roleLBracket = "lbracket"
	roleRBracket = "rbracket"
	roleComma    = "comma"
	roleDot      = "dot"
	roleSymb     = "symb"
	roleWord     = "word"
	roleIndex    = "index"
	roleNumeral  = "numeral"
	roleSpace    = "space"
	roleComment  = "comment"
	roleEOF      = "eof"
)

//nolint:gochecknoglobals
var (
	requiredRoles = []string{
		roleIff, roleImplies, roleAnd, roleOr, roleNot, roleOperator,
		roleLParen, roleRParen, roleLBracket, roleRBracket, roleComma, roleDot,
		roleSymb, roleWord, roleIndex, roleNumeral,
	}
	optionalRoles = []string{
		roleAll, roleExists, roleSep, roleNewline, roleSpace, roleComment,
	}
)

// ReadLexicon decodes a lexicon document from r. Unknown fields are
// rejected.
func ReadLexicon(r io.Reader) (Lexicon, error) {
	var lex Lexicon
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&lex); err != nil {
		return Lexicon{}, ErrLexicon.Wrap(err)
	}

	return lex, nil
}

// Validate reports whether lex can drive the engine: a supported version,
// every required role exactly once, a spelling for each quantifier, and
// patterns that compile and never match empty input.
func (lex Lexicon) Validate() error {
	if lex.Version != LexiconVersion {
		return ErrLexicon.With(
			slog.Int("version", lex.Version),
			slog.Int("supported", LexiconVersion),
		)
	}

	seen := make(map[string]bool, len(lex.Tokens))

	for i, rule := range lex.Tokens {
		switch {
		case !slices.Contains(requiredRoles, rule.Role) &&
			!slices.Contains(optionalRoles, rule.Role):
			return ErrLexicon.With(slog.Int("rule", i), slog.String("unknown role", rule.Role))
		case seen[rule.Role]:
			return ErrLexicon.With(slog.Int("rule", i), slog.String("duplicate role", rule.Role))
		}

		seen[rule.Role] = true

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return ErrLexicon.With(slog.String("role", rule.Role)).Wrap(err)
		}

		if re.MatchString("") {
			return ErrLexicon.With(
				slog.String("role", rule.Role),
				slog.String("reason", "pattern matches empty input"),
			)
		}
	}

	for _, role := range requiredRoles {
		if !seen[role] {
			return ErrLexicon.With(slog.String("missing role", role))
		}
	}

	for _, role := range []string{roleAll, roleExists} {
		if !seen[role] && lex.Keywords[role] == "" {
			return ErrLexicon.With(slog.String("missing quantifier", role))
		}
	}

	for role := range lex.Keywords {
		if role != roleAll && role != roleExists {
			return ErrLexicon.With(slog.String("unknown keyword", role))
		}
	}

	return nil
}
