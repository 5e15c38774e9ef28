package grammar

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rule tags a node of the concrete parse tree.
type Rule string

// Rules emitted by the engine.
const (
	RuleExprs      Rule = "exprs"
	RuleExpr       Rule = "expr"
	RuleExprClosed Rule = "exprclosed"
	RuleExprOpen   Rule = "expropen"
	RuleTerms      Rule = "terms"
	RuleTerm       Rule = "term"
	RuleTermClosed Rule = "termclosed"
	RuleTermOpen   Rule = "termopen"
	RuleVariable   Rule = "variable"
	RuleConstant   Rule = "constant"
	RuleFuncPolish Rule = "funcpolish"
	RuleRelnPolish Rule = "relnpolish"
	RuleFuncInfix  Rule = "funcinfix"
	RuleRelnInfix  Rule = "relninfix"
	RuleOp         Rule = "op"
	RuleName       Rule = "name"
	RuleSymb       Rule = "symb"
	RuleWord       Rule = "word"
	RuleIndex      Rule = "index"
	RuleNot        Rule = "not"
	RuleAnd        Rule = "and"
	RuleOr         Rule = "or"
	RuleImplies    Rule = "implies"
	RuleIff        Rule = "iff"
	RuleQuantified Rule = "quantified"
	RuleAll        Rule = "all"
	RuleExists     Rule = "exists"
)

// Node is a node of the concrete parse tree. Leaves (word, symb, index, and
// op nodes spelled by an operator token) carry the matched Text; every
// other node is defined by its Rule and Children.
type Node struct {
	Rule     Rule
	Text     string
	Children []*Node
	Pos      lexer.Position
}

// Child returns the i'th child of n, or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// String renders n as an s-expression, e.g.
//
//	(relnpolish (name word:"P") (terms (term (termopen (variable (name word:"x"))))))
func (n *Node) String() string {
	var b strings.Builder

	n.write(&b)

	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")

		return
	}

	if len(n.Children) == 0 && n.Text != "" {
		b.WriteString(string(n.Rule))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(n.Text))

		return
	}

	b.WriteByte('(')
	b.WriteString(string(n.Rule))

	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}

	b.WriteByte(')')
}
