package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/fol/fol"
)

// commands are the names accepted after ':'.
var commands = []string{"help", "mode", "eq", "check", "clear", "quit"}

// checkNames are the variables and builtins offered after ":check".
var checkNames = []string{
	"kind", "label", "symbol", "display", "text", "typeset",
	"arity", "depth", "children", "all", "any", "none", "one", "len",
}

// isWordBoundary reports whether r separates completable words. Letters,
// digits, '_' subscripts and the '\' of generic symbols belong to words.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '[', ']', ',', '.', ';', ':',
		'!', '&', '|', '-', '<', '>', '=', '+', '*', '/', '~', '^', '%', '@',
		'{', '}', '"':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte boundaries in
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// identifiers adds the symbol of every token in e to seen.
func identifiers(e *fol.Expr, seen map[string]struct{}) {
	if e == nil {
		return
	}

	if e.IsLabelled() && e.Symbol() != "" {
		seen[e.Symbol()] = struct{}{}
	}

	for _, c := range e.Children() {
		identifiers(c, seen)
	}
}

// candidates returns the completion list for a word starting at wordStart.
// A word right after the leading ':' completes command names; the argument
// of ":check" completes assertion names; anything else completes quantifier
// keywords and identifiers seen in earlier input.
func (m model) candidates(input string, wordStart int) []string {
	if strings.HasPrefix(input, ":") {
		head := strings.TrimPrefix(input[:wordStart], ":")
		if strings.TrimSpace(head) == "" {
			return commands
		}

		if strings.HasPrefix(head, "check ") {
			return checkNames
		}

		if !strings.HasPrefix(head, "eq ") {
			return nil
		}
	}

	names := slices.Clone(m.keywords)
	names = append(names, slices.Sorted(maps.Keys(m.seen))...)

	return names
}

// computeMatches returns the fuzzy matches for the word at the cursor, ranked
// best-first, together with the word's boundaries. An empty word has no
// matches so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, start, end := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, start, end
	}

	names := m.candidates(input, start)
	if len(names) == 0 {
		return nil, start, end
	}

	return fuzzy.Find(word, names), start, end
}

// renderCandidateBar builds the single-line completion bar, cut off with an
// ellipsis at width. The selected candidate is highlighted while tabbing.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabbing bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabbing && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes emphasized.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, hit := suggestionStyle, matchStyle
	if selected {
		base, hit = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(hit.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
