package repl

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ardnew/fol/grammar"
	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/parse"
)

func testModel(t *testing.T) model {
	t.Helper()

	g, err := grammar.Default()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(context.Background(), parse.New(g), h, log.Logger{})
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_paren", "P(fo", 4, "fo", 2, 4},
		{"after_comma", "P(a, fo", 7, "fo", 5, 7},
		{"after_dot", "all x.Pr", 8, "Pr", 6, 8},
		{"after_connective", "a && fo", 7, "fo", 5, 7},
		{"after_arrow", "a->fo", 5, "fo", 3, 5},
		{"subscript", "x_1", 3, "x_1", 0, 3},
		{"generic", `\alpha`, 6, `\alpha`, 0, 6},
		{"command", ":che", 4, "che", 1, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"empty_at_boundary", "P(", 2, "", 2, 2},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"unicode", "∀x", len("∀x"), "∀x", 0, len("∀x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected (%q, %d, %d), got (%q, %d, %d)",
					tt.wantWord, tt.wantStart, tt.wantEnd, word, start, end)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	m := testModel(t)
	m.evaluate("Parent(alice, bob)")

	tests := []struct {
		name     string
		input    string
		start    int
		contains string
		excludes string
	}{
		{"command", ":he", 1, "help", "Parent"},
		{"check_argument", ":check ki", 7, "kind", "Parent"},
		{"eq_argument", ":eq Par", 4, "Parent", "help"},
		{"formula_keyword", "ex", 0, "exists", "help"},
		{"formula_seen", "Pa", 0, "Parent", "kind"},
		{"formula_term", "P(al", 2, "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.candidates(tt.input, tt.start)
			if !slices.Contains(got, tt.contains) {
				t.Errorf("expected %q in %v", tt.contains, got)
			}

			if tt.excludes != "" && slices.Contains(got, tt.excludes) {
				t.Errorf("expected %q not in %v", tt.excludes, got)
			}
		})
	}
}

func TestCandidates_OtherCommandArgs(t *testing.T) {
	m := testModel(t)

	if got := m.candidates(":mode tr", 6); got != nil {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestComputeMatches(t *testing.T) {
	m := testModel(t)
	m.evaluate("Human(socrates) -> Mortal(socrates)")

	m.input.SetValue("Mor")
	m.input.SetCursor(3)

	matches, start, end := m.computeMatches()
	if start != 0 || end != 3 {
		t.Errorf("expected bounds (0, 3), got (%d, %d)", start, end)
	}

	if len(matches) == 0 || matches[0].Str != "Mortal" {
		t.Fatalf("expected Mortal as best match, got %v", matches)
	}

	m.input.SetValue("P(")
	m.input.SetCursor(2)

	if matches, _, _ := m.computeMatches(); matches != nil {
		t.Errorf("expected no matches for empty word, got %v", matches)
	}
}

func TestCycle(t *testing.T) {
	m := testModel(t)
	m.evaluate("Pa(x); Pb(x)")

	m.input.SetValue("P")
	m.input.SetCursor(1)
	m.refreshMatches()

	if len(m.matches) < 2 {
		t.Fatalf("expected at least two matches, got %v", m.matches)
	}

	first := m.cycle(+1)
	if !first.tabbing || first.input.Value() != first.matches[0].Str {
		t.Errorf("expected first candidate %q, got %q", first.matches[0].Str, first.input.Value())
	}

	back := m.cycle(-1)
	last := back.matches[len(back.matches)-1].Str
	if back.input.Value() != last {
		t.Errorf("expected last candidate %q, got %q", last, back.input.Value())
	}
}
