package repl

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/suite"
)

// result is the outcome of one submitted line.
type result struct {
	err   error
	out   string
	quit  bool
	clear bool
}

// evaluate runs a command line (":name args") or parses a formula line.
func (m *model) evaluate(line string) result {
	if rest, ok := strings.CutPrefix(line, ":"); ok {
		name, args, _ := strings.Cut(strings.TrimSpace(rest), " ")

		m.logger.TraceContext(m.ctx, "repl command",
			slog.String("command", name),
			slog.String("args", args),
		)

		return m.command(name, strings.TrimSpace(args))
	}

	exprs, err := m.parser.Parse(m.ctx, line)
	if err != nil {
		return result{err: err}
	}

	m.remember(exprs)

	m.logger.TraceContext(m.ctx, "repl parse", slog.Int("count", len(exprs)))

	return result{out: m.show(exprs)}
}

func (m *model) command(name, args string) result {
	switch name {
	case "q", "quit", "exit":
		return result{quit: true}

	case "h", "help":
		return result{out: helpMessage()}

	case "clear":
		return result{clear: true}

	case "mode":
		switch args {
		case "":
			m.mode = (m.mode + 1) % 2
		case ModeRender.String():
			m.mode = ModeRender
		case ModeTree.String():
			m.mode = ModeTree
		default:
			return result{err: ErrUnknownViewMode.With(slog.String("mode", args))}
		}

		return result{out: hintStyle.Render("mode: " + m.mode.String())}

	case "eq":
		return m.equal(args)

	case "check":
		return m.check(args)
	}

	return result{err: ErrUnknownCommand.With(slog.String("command", name))}
}

// equal parses args as exactly two formulas and compares them.
func (m *model) equal(args string) result {
	exprs, err := m.parser.Parse(m.ctx, args)
	if err != nil {
		return result{err: err}
	}

	if len(exprs) != 2 {
		return result{err: ErrUsage.With(
			slog.String("command", ":eq A; B"),
			slog.Int("formulas", len(exprs)),
		)}
	}

	m.remember(exprs)

	return result{out: resultStyle.Render(strconv.FormatBool(exprs[0].Equal(exprs[1])))}
}

// check evaluates an assertion against every formula of the last input.
func (m *model) check(source string) result {
	if source == "" {
		return result{err: ErrUsage.With(slog.String("command", ":check EXPR"))}
	}

	if len(m.last) == 0 {
		return result{err: ErrNothingToCheck}
	}

	out := make([]string, 0, len(m.last))

	for _, e := range m.last {
		ok, err := suite.Eval(source, e)
		if err != nil {
			return result{err: err}
		}

		out = append(out, resultStyle.Render(strconv.FormatBool(ok)))
	}

	return result{out: strings.Join(out, "\n")}
}

// remember keeps exprs for :check and their identifiers for completion.
func (m *model) remember(exprs []*fol.Expr) {
	m.last = exprs
	for _, e := range exprs {
		identifiers(e, m.seen)
	}
}

func (m *model) show(exprs []*fol.Expr) string {
	lines := make([]string, 0, 2*len(exprs))

	for _, e := range exprs {
		if m.mode == ModeTree {
			lines = append(lines, e.Pretty(fol.WithLabelStyle(func(s string) string {
				return labelStyle.Render(s)
			})))

			continue
		}

		lines = append(lines,
			resultStyle.Render(fol.Render(e, fol.Symbolic, e.Brackets())),
			typesetStyle.Render(fol.Render(e, fol.Typeset, e.Brackets())),
		)
	}

	return strings.Join(lines, "\n")
}
