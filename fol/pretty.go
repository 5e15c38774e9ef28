package fol

import "strings"

// PrettyOption configures [Expr.Pretty].
type PrettyOption func(*prettyConfig)

type prettyConfig struct {
	margin string
	tab    string
	style  func(string) string
}

// WithMargin prefixes every line with margin.
func WithMargin(margin string) PrettyOption {
	return func(c *prettyConfig) { c.margin = margin }
}

// WithTab sets the indentation added per level (default two spaces).
func WithTab(tab string) PrettyOption {
	return func(c *prettyConfig) { c.tab = tab }
}

// WithLabelStyle decorates labels, e.g. with terminal colors.
func WithLabelStyle(style func(string) string) PrettyOption {
	return func(c *prettyConfig) { c.style = style }
}

// Pretty returns an indented dump of the tree rooted at e, one line per
// node. Lines show the kind, followed by the label for terms and atomic
// formulas:
//
//	all
//	  |__ variable x
//	  |__ relationexpression P
//	    |__ variable x
func (e *Expr) Pretty(opts ...PrettyOption) string {
	cfg := prettyConfig{tab: "  ", style: func(s string) string { return s }}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder

	e.pretty(&b, &cfg, "", 0)

	return b.String()
}

func (e *Expr) pretty(b *strings.Builder, cfg *prettyConfig, prefix string, depth int) {
	if depth > 0 {
		b.WriteByte('\n')
	}

	b.WriteString(cfg.margin)
	b.WriteString(strings.Repeat(cfg.tab, depth))
	b.WriteString(prefix)
	b.WriteString(e.kind.String())

	if e.kind.IsTerm() || e.kind.IsAtomic() {
		b.WriteByte(' ')
		b.WriteString(cfg.style(e.label))
	}

	for _, c := range e.children {
		c.pretty(b, cfg, "|__ ", depth+1)
	}
}
