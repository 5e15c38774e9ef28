package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const suiteDoc = `
log-level: info
parts:
  test:
    - name: prefix relation
      input: P(x)
      symbol: P(x)
    - name: conjunction
      input: a && b
      display: a ∧ b
    - name: wrong render
      input: P(x)
      symbol: Q(x)
`

func TestTest_Run(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", suiteDoc)

	out, err := run(t, "", (&Test{Suite: path, Path: []string{"parts", "test"}}).Run)
	if !errors.Is(err, ErrSuiteFailed) {
		t.Errorf("expected ErrSuiteFailed, got %v", err)
	}

	for _, want := range []string{"PASS prefix relation", "PASS conjunction", "FAIL wrong render", "2 passed, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestTest_RunMatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", suiteDoc)

	out, err := run(t, "", (&Test{Suite: path, Path: []string{"parts", "test"}, Match: "relation"}).Run)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(out, "1 passed, 0 failed") || strings.Contains(out, "conjunction") {
		t.Errorf("unexpected report:\n%s", out)
	}
}

func TestTest_Testdata(t *testing.T) {
	path := filepath.Join("..", "..", "suite", "testdata", "suite.yaml")

	out, err := run(t, "", (&Test{Suite: path, Path: []string{"parts", "test"}}).Run)
	if err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, out)
	}
}

func TestTest_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "", (&Test{Suite: filepath.Join(dir, "absent.yaml")}).Run); !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}

	path := writeFile(t, dir, "config.yaml", "log-level: info\n")
	if _, err := run(t, "", (&Test{Suite: path, Path: []string{"parts", "test"}}).Run); err == nil {
		t.Error("expected error for a document without cases")
	}
}
