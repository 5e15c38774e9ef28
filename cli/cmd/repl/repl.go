// Package repl implements the interactive fol session.
//
// Each submitted line is parsed with the configured parser and printed in
// symbolic and typeset notation, or as a tree. Lines starting with ':' are
// commands; see [helpMessage]. Completion candidates appear as you type and
// are cycled with Tab. History persists in the cache directory.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/fol/fol"
	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/parse"
)

const prompt = "⊢ "

func helpMessage() string {
	return `
Commands:

  :help            Print this message
  :mode [MODE]     Switch output between render and tree
  :eq A; B         Report whether two formulas are structurally equal
  :check EXPR      Evaluate a boolean expression over the last formula,
                   e.g. :check kind == "all" && depth > 2
  :clear           Clear screen
  :quit            Exit

Usage:
  Type a formula to parse it, several separated by ';'
  Press Tab / Shift-Tab to cycle through completions
  Use Up/Down arrows for history navigation
  Press Ctrl+C on an empty line or Ctrl+D to exit
`
}

// Mode selects how parsed formulas are printed.
type Mode int

const (
	// ModeRender prints the symbolic and typeset renders.
	ModeRender Mode = iota
	// ModeTree prints the expression tree.
	ModeTree
)

func (m Mode) String() string {
	if m == ModeTree {
		return "tree"
	}

	return "render"
}

// Option configures [Run].
type Option func(*model)

// WithMode sets the initial output mode.
func WithMode(mode Mode) Option {
	return func(m *model) { m.mode = mode }
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	typesetStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx        context.Context //nolint:containedctx
	parser     *parse.Parser
	history    *History
	seen       map[string]struct{}
	logger     log.Logger
	input      textinput.Model
	keywords   []string
	last       []*fol.Expr
	matches    fuzzy.Matches
	preTabText string
	historyIdx int
	wordStart  int
	wordEnd    int
	suggIdx    int
	preTabPos  int
	width      int
	mode       Mode
	tabbing    bool
	quitting   bool
}

// Run starts the REPL. History is kept in cacheDir.
func Run(
	ctx context.Context,
	p *parse.Parser,
	cacheDir string,
	logger log.Logger,
	opts ...Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, p, history, logger, opts...)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	p *parse.Parser,
	history *History,
	logger log.Logger,
	opts ...Option,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	var keywords []string
	for _, word := range p.Grammar().Lexicon().Keywords {
		keywords = append(keywords, word)
	}

	slices.Sort(keywords)

	m := model{
		ctx:        ctx,
		parser:     p,
		history:    history,
		seen:       make(map[string]struct{}),
		logger:     logger,
		input:      ti,
		keywords:   keywords,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a formula or :help (mode: " + m.mode.String() + ")"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabbing, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx, "repl keypress", slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabbing = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabbing && len(m.matches) > 0 {
			m.tabbing = false
			m.refreshMatches()

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(m.historyIdx - 1), nil

	case tea.KeyDown:
		return m.recall(m.historyIdx + 1), nil

	case tea.KeyEsc:
		if m.tabbing {
			m.tabbing = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabPos)
			m.refreshMatches()
		}

		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.tabbing && msg.String() == " " {
		m.tabbing = false
	} else if msg.Type != tea.KeyRunes {
		m.tabbing = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the completion selection by step, replacing the current word.
// A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabbing = false
		m.matches = nil

		return m
	}

	if !m.tabbing {
		m.tabbing = true
		m.preTabText = m.input.Value()
		m.preTabPos = m.input.Position()
		m.suggIdx = -1
		if step < 0 {
			m.suggIdx = 0
		}
	}

	m.suggIdx = ((m.suggIdx+step)%n + n) % n
	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord substitutes the word under completion and moves the cursor
// after it.
func (m *model) replaceWord(s string) {
	v := m.input.Value()
	m.input.SetValue(v[:m.wordStart] + s + v[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	if !m.tabbing {
		m.suggIdx = -1
	}
}

// recall shows history entry i; past the newest entry the input is cleared.
func (m model) recall(i int) model {
	switch {
	case i < 0:
		return m
	case i >= m.history.Len():
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
	default:
		line, err := m.history.Line(i)
		if err != nil {
			return m
		}

		m.historyIdx = i
		m.input.SetValue(line)
		m.input.SetCursor(len(line))
	}

	m.tabbing = false
	m.refreshMatches()

	return m
}

func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))

	res := m.evaluate(line)

	switch {
	case res.quit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)
	case res.clear:
		return m, tea.ClearScreen
	case res.err != nil:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+res.err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(res.out))
}
