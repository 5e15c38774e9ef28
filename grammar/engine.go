package grammar

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// engine is a recursive descent parser over a filtered token stream. The
// last token is always the end of input.
type engine struct {
	src     string
	toks    []token
	pos     int
	nesting int
	limit   int
}

func (e *engine) peek() token { return e.toks[e.pos] }

func (e *engine) peekAt(k int) token {
	return e.toks[min(e.pos+k, len(e.toks)-1)]
}

func (e *engine) at(roles ...string) bool {
	return slices.Contains(roles, e.peek().role)
}

func (e *engine) next() token {
	t := e.toks[e.pos]
	if t.role != roleEOF {
		e.pos++
	}

	return t
}

func (e *engine) expect(role, what string) (token, error) {
	if !e.at(role) {
		return token{}, e.fail(what)
	}

	return e.next(), nil
}

func (e *engine) fail(expected string) error {
	t := e.peek()

	var found string

	switch t.role {
	case roleEOF:
		found = "end of input"
	case roleNewline:
		found = "newline"
	default:
		found = strconv.Quote(t.text)
	}

	return syntaxError(e.src, t.pos.Offset, found, expected)
}

func (e *engine) enter() error {
	e.nesting++
	if e.limit > 0 && e.nesting > e.limit {
		line, col, _ := locate(e.src, e.peek().pos.Offset)

		return ErrNesting.With(
			slog.Int("limit", e.limit),
			slog.Int("line", line),
			slog.Int("column", col),
		)
	}

	return nil
}

func (e *engine) leave() { e.nesting-- }

// atName reports whether a name starts here. Keywords never reach the
// engine as words.
func (e *engine) atName() bool { return e.at(roleWord, roleSymb) }

// atOp reports whether an infix operator starts here.
func (e *engine) atOp() bool { return e.at(roleOperator) || e.atName() }

func wrap(outer, inner Rule, n *Node, pos lexer.Position) *Node {
	return &Node{Rule: outer, Pos: pos, Children: []*Node{
		{Rule: inner, Pos: pos, Children: []*Node{n}},
	}}
}

func openExpr(n *Node) *Node { return wrap(RuleExpr, RuleExprOpen, n, n.Pos) }

func openTerm(n *Node) *Node { return wrap(RuleTerm, RuleTermOpen, n, n.Pos) }

func closedExpr(n *Node, pos lexer.Position) *Node {
	return wrap(RuleExpr, RuleExprClosed, n, pos)
}

func closedTerm(n *Node, pos lexer.Position) *Node {
	return wrap(RuleTerm, RuleTermClosed, n, pos)
}

// exprs := expr { (';' | newline) expr }
func (e *engine) exprs() (*Node, error) {
	root := &Node{Rule: RuleExprs, Pos: e.peek().pos}

	for {
		for e.at(roleSep, roleNewline) {
			e.next()
		}

		if e.at(roleEOF) {
			return root, nil
		}

		x, err := e.expr()
		if err != nil {
			return nil, err
		}

		root.Children = append(root.Children, x)

		if !e.at(roleSep, roleNewline, roleEOF) {
			return nil, e.fail("';' or newline")
		}
	}
}

// expr := implies [ '<->' expr ]
func (e *engine) expr() (*Node, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	left, err := e.implies()
	if err != nil || !e.at(roleIff) {
		return left, err
	}

	e.next()

	right, err := e.expr()
	if err != nil {
		return nil, err
	}

	return openExpr(&Node{Rule: RuleIff, Pos: left.Pos, Children: []*Node{left, right}}), nil
}

// implies := or [ '->' implies ]
func (e *engine) implies() (*Node, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	left, err := e.or()
	if err != nil || !e.at(roleImplies) {
		return left, err
	}

	e.next()

	right, err := e.implies()
	if err != nil {
		return nil, err
	}

	return openExpr(&Node{Rule: RuleImplies, Pos: left.Pos, Children: []*Node{left, right}}), nil
}

func (e *engine) or() (*Node, error) { return e.nary(RuleOr, roleOr, e.and) }

func (e *engine) and() (*Node, error) { return e.nary(RuleAnd, roleAnd, e.unary) }

func (e *engine) nary(rule Rule, role string, operand func() (*Node, error)) (*Node, error) {
	first, err := operand()
	if err != nil || !e.at(role) {
		return first, err
	}

	n := &Node{Rule: rule, Pos: first.Pos, Children: []*Node{first}}

	for e.at(role) {
		e.next()

		x, err := operand()
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, x)
	}

	return openExpr(n), nil
}

// unary := '!' unary | quantified | atom
func (e *engine) unary() (*Node, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	switch t := e.peek(); t.role {
	case roleNot:
		e.next()

		x, err := e.unary()
		if err != nil {
			return nil, err
		}

		return openExpr(&Node{Rule: RuleNot, Pos: t.pos, Children: []*Node{x}}), nil

	case roleAll, roleExists:
		return e.quantified()

	default:
		return e.atom()
	}
}

// quantified := ('all' | 'exists') variable '.' expr
func (e *engine) quantified() (*Node, error) {
	t := e.next()

	rule := RuleAll
	if t.role == roleExists {
		rule = RuleExists
	}

	name, err := e.name("bound variable")
	if err != nil {
		return nil, err
	}

	if _, err := e.expect(roleDot, "'.'"); err != nil {
		return nil, err
	}

	body, err := e.expr()
	if err != nil {
		return nil, err
	}

	bound := &Node{Rule: RuleVariable, Pos: name.Pos, Children: []*Node{name}}
	q := &Node{Rule: rule, Pos: t.pos, Children: []*Node{bound, body}}

	return openExpr(&Node{Rule: RuleQuantified, Pos: t.pos, Children: []*Node{q}}), nil
}

// atom := '(' expr ')' | relation
//
// A parenthesis may also open the first term of an infix relation, as in
// "(x + y) = z". That reading is tried first and abandoned unless an
// operator follows the closing parenthesis.
func (e *engine) atom() (*Node, error) {
	if !e.at(roleLParen) {
		return e.relation()
	}

	mark := e.pos

	n, err := e.parenRelation()

	switch {
	case errors.Is(err, ErrNesting):
		return nil, err
	case err == nil && n != nil:
		return n, nil
	}

	e.pos = mark
	open := e.next()

	x, err := e.expr()
	if err != nil {
		return nil, err
	}

	if _, err := e.expect(roleRParen, "')'"); err != nil {
		return nil, err
	}

	return closedExpr(x, open.pos), nil
}

// parenRelation returns nil without error if the input here is not an
// infix relation whose first term is parenthesized.
func (e *engine) parenRelation() (*Node, error) {
	first, err := e.primary()
	if err != nil || !e.atOp() {
		return nil, err
	}

	n, err := e.chain(RuleRelnInfix, first)
	if err != nil {
		return nil, err
	}

	return openExpr(n), nil
}

// relation := primary op primary { op primary } | name [ '(' terms ')' ]
func (e *engine) relation() (*Node, error) {
	var first *Node

	switch {
	case e.atName() && !e.atConstant():
		name, err := e.name("formula")
		if err != nil {
			return nil, err
		}

		args := &Node{Rule: RuleTerms, Pos: name.Pos}

		applied := e.at(roleLParen)
		if applied {
			if args, err = e.terms(); err != nil {
				return nil, err
			}
		}

		if !e.atOp() {
			return openExpr(&Node{Rule: RuleRelnPolish, Pos: name.Pos, Children: []*Node{name, args}}), nil
		}

		if applied {
			first = openTerm(&Node{Rule: RuleFuncPolish, Pos: name.Pos, Children: []*Node{name, args}})
		} else {
			first = openTerm(&Node{Rule: RuleVariable, Pos: name.Pos, Children: []*Node{name}})
		}

	case e.at(roleLBracket, roleNumeral) || e.atConstant():
		var err error
		if first, err = e.primary(); err != nil {
			return nil, err
		}

		if !e.atOp() {
			return nil, e.fail("operator")
		}

	default:
		return nil, e.fail("formula")
	}

	n, err := e.chain(RuleRelnInfix, first)
	if err != nil {
		return nil, err
	}

	return openExpr(n), nil
}

// atConstant reports whether a generic constant such as \c[0] starts here.
func (e *engine) atConstant() bool {
	t, n := e.peek(), e.peekAt(1)

	return t.role == roleSymb && n.role == roleLBracket && adjacent(t, n)
}

// chain collects "op primary" pairs following first.
func (e *engine) chain(rule Rule, first *Node) (*Node, error) {
	n := &Node{Rule: rule, Pos: first.Pos, Children: []*Node{first}}

	for e.atOp() {
		op, err := e.op()
		if err != nil {
			return nil, err
		}

		x, err := e.primary()
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, op, x)
	}

	return n, nil
}

// op := operator | name
func (e *engine) op() (*Node, error) {
	if e.at(roleOperator) {
		t := e.next()

		return &Node{Rule: RuleOp, Text: t.text, Pos: t.pos}, nil
	}

	name, err := e.name("operator")
	if err != nil {
		return nil, err
	}

	return &Node{Rule: RuleOp, Pos: name.Pos, Children: []*Node{name}}, nil
}

// term := primary [ op primary { op primary } ]
func (e *engine) term() (*Node, error) {
	first, err := e.primary()
	if err != nil || !e.atOp() {
		return first, err
	}

	n, err := e.chain(RuleFuncInfix, first)
	if err != nil {
		return nil, err
	}

	return openTerm(n), nil
}

// terms := '(' [ term { ',' term } ] ')'
func (e *engine) terms() (*Node, error) {
	open, err := e.expect(roleLParen, "'('")
	if err != nil {
		return nil, err
	}

	n := &Node{Rule: RuleTerms, Pos: open.pos}

	if e.at(roleRParen) {
		e.next()

		return n, nil
	}

	for {
		x, err := e.term()
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, x)

		if !e.at(roleComma) {
			break
		}

		e.next()
	}

	if _, err := e.expect(roleRParen, "',' or ')'"); err != nil {
		return nil, err
	}

	return n, nil
}

// primary := '(' term ')' | name '(' terms ')' | constant | variable
func (e *engine) primary() (*Node, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	t := e.peek()

	switch {
	case t.role == roleLParen:
		e.next()

		x, err := e.term()
		if err != nil {
			return nil, err
		}

		if _, err := e.expect(roleRParen, "')'"); err != nil {
			return nil, err
		}

		return closedTerm(x, t.pos), nil

	case t.role == roleLBracket, t.role == roleNumeral:
		return e.constant(nil)

	case e.atConstant():
		e.next()

		return e.constant(&Node{Rule: RuleSymb, Text: t.text, Pos: t.pos})

	case e.atName():
		name, err := e.name("term")
		if err != nil {
			return nil, err
		}

		if !e.at(roleLParen) {
			return openTerm(&Node{Rule: RuleVariable, Pos: name.Pos, Children: []*Node{name}}), nil
		}

		args, err := e.terms()
		if err != nil {
			return nil, err
		}

		return openTerm(&Node{Rule: RuleFuncPolish, Pos: name.Pos, Children: []*Node{name, args}}), nil

	default:
		return nil, e.fail("term")
	}
}

// constant := '[' index ']' | symb '[' index ']' | numeral
func (e *engine) constant(symb *Node) (*Node, error) {
	t := e.peek()
	c := &Node{Rule: RuleConstant, Pos: t.pos}

	if symb != nil {
		c.Pos = symb.Pos
		c.Children = append(c.Children, symb)
	} else if t.role == roleNumeral {
		e.next()
		c.Children = append(c.Children, &Node{Rule: RuleIndex, Text: t.text, Pos: t.pos})

		return openTerm(c), nil
	}

	if _, err := e.expect(roleLBracket, "'['"); err != nil {
		return nil, err
	}

	idx := e.peek()
	if idx.role != roleNumeral && idx.role != roleWord {
		return nil, e.fail("constant index")
	}

	e.next()
	c.Children = append(c.Children, &Node{Rule: RuleIndex, Text: idx.text, Pos: idx.pos})

	if _, err := e.expect(roleRBracket, "']'"); err != nil {
		return nil, err
	}

	return openTerm(c), nil
}

// name := (word | symb) [ index ]
//
// The index must follow the base name without intervening space.
func (e *engine) name(what string) (*Node, error) {
	t := e.peek()

	var rule Rule

	switch t.role {
	case roleWord:
		rule = RuleWord
	case roleSymb:
		rule = RuleSymb
	default:
		return nil, e.fail(what)
	}

	e.next()

	n := &Node{Rule: RuleName, Pos: t.pos, Children: []*Node{
		{Rule: rule, Text: t.text, Pos: t.pos},
	}}

	if idx := e.peek(); idx.role == roleIndex && adjacent(t, idx) {
		e.next()

		n.Children = append(n.Children, &Node{Rule: RuleIndex, Text: subscript(idx.text), Pos: idx.pos})
	}

	return n, nil
}

func adjacent(a, b token) bool { return a.pos.Offset+len(a.text) == b.pos.Offset }

// subscript strips the leading underscore and optional braces of an index
// token: "_1" and "_{1}" both yield "1".
func subscript(s string) string {
	s = strings.TrimPrefix(s, "_")
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}

	return s
}
