package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "fol" {
		t.Errorf("expected Name to be %q, got %q", "fol", Name)
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)
	if !semver.MatchString(Version()) {
		t.Errorf("expected semantic version, got %q", Version())
	}
}

var (
	errSample = NewError("sample failure")
	errBroken = NewDefect("broken invariant")
)

func TestError_IsMatchesSentinelAfterRefinement(t *testing.T) {
	err := errSample.With(slog.String("input", "P(x")).Wrap(errors.New("eof"))

	if !errors.Is(err, errSample) {
		t.Error("expected refined error to match its sentinel")
	}

	if errors.Is(err, errBroken) {
		t.Error("expected refined error not to match another sentinel")
	}

	if got := err.Error(); got != "sample failure: eof" {
		t.Errorf("expected %q, got %q", "sample failure: eof", got)
	}
}

func TestError_WithDoesNotAlias(t *testing.T) {
	base := errSample.With(slog.Int("a", 1))
	left := base.With(slog.Int("b", 2))
	right := base.With(slog.Int("c", 3))

	if len(base.Attrs()) != 1 {
		t.Fatalf("expected base to keep 1 attr, got %d", len(base.Attrs()))
	}

	if _, ok := left.Attr("c"); ok {
		t.Error("attribute leaked between sibling errors")
	}

	if v, ok := right.Attr("c"); !ok || v.Int64() != 3 {
		t.Errorf("expected c=3, got %v (found=%v)", v, ok)
	}
}

func TestIsDefect(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("plain"), false},
		{"user error", errSample.With(slog.String("k", "v")), false},
		{"defect", errBroken, true},
		{"defect cause", errSample.Wrap(errBroken), true},
		{"fmt wrapped", fmt.Errorf("outer: %w", errBroken.Wrap(errSample)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDefect(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAttrOf(t *testing.T) {
	inner := NewError("inner").With(slog.String("where", "deep"))
	outer := NewError("outer").With(slog.Int("count", 2)).Wrap(fmt.Errorf("ctx: %w", inner))

	if v, ok := AttrOf(outer, "count"); !ok || v.Int64() != 2 {
		t.Errorf("expected count 2, got %v", v)
	}

	if v, ok := AttrOf(outer, "where"); !ok || v.String() != "deep" {
		t.Errorf("expected where=deep, got %v", v)
	}

	if _, ok := AttrOf(outer, "missing"); ok {
		t.Error("expected missing attribute")
	}

	if _, ok := AttrOf(errors.New("plain"), "count"); ok {
		t.Error("expected no attributes on a plain error")
	}
}
