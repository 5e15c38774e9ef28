package fol

import (
	"errors"
	"testing"
)

func TestIdent_Decomposition(t *testing.T) {
	tests := []struct {
		name    string
		id      Ident
		label   string
		symbol  string
		display string
	}{
		{"plain", Ident{Name: "x"}, "x", "x", "x"},
		{"generic plain", Ident{Name: `\alpha`, Generic: true}, `\alpha`, `\alpha`, `\alpha`},
		{"subscript", Ident{Name: "x", Index: "1"}, "x_1", "x_1", "x_{1}"},
		{"braced subscript", Ident{Name: "x", Index: "i+1"}, "x_i+1", "x_{i+1}", "x_{i+1}"},
		{"generic subscript", Ident{Name: `\alpha`, Index: "1", Generic: true}, "1", `\alpha_1`, `\alpha_{1}`},
		{"position", Ident{Index: "0", IndexLike: true}, "0", "[0]", "[0]"},
		{"named position", Ident{Name: "c", Index: "0", IndexLike: true}, "0", "[0]", "[0]"},
		{"generic position", Ident{Name: `\kappa`, Index: "0", IndexLike: true, Generic: true}, "0", `\kappa[0]`, `\kappa[0]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Label(); got != tt.label {
				t.Errorf("label: expected %q, got %q", tt.label, got)
			}

			if got := tt.id.Symbol(); got != tt.symbol {
				t.Errorf("symbol: expected %q, got %q", tt.symbol, got)
			}

			if got := tt.id.Display(); got != tt.display {
				t.Errorf("display: expected %q, got %q", tt.display, got)
			}
		})
	}
}

func TestIdent_GenericComparesByIndex(t *testing.T) {
	a := Variable(`\alpha`, WithIndex("1"), Generic())
	b := Variable(`\beta`, WithIndex("1"), Generic())
	c := Variable(`\alpha`, WithIndex("2"), Generic())

	if !a.Equal(b) {
		t.Errorf("expected %s == %s", a, b)
	}

	if a.Equal(c) {
		t.Errorf("expected %s != %s", a, c)
	}

	x1 := Variable("x", WithIndex("1"))
	y1 := Variable("y", WithIndex("1"))

	if x1.Equal(y1) {
		t.Errorf("expected %s != %s", x1, y1)
	}
}

func TestToken_IdentCheck(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		id    Ident
		valid bool
	}{
		{"plain variable", KindVariable, MakeIdent("x"), true},
		{"subscript variable", KindVariable, MakeIdent("x", WithIndex("1")), true},
		{"generic variable", KindVariable, MakeIdent(`\alpha`, WithIndex("1"), Generic()), true},
		{"position constant", KindConstant, MakeIdent("", WithIndex("1"), IndexLike()), true},
		{"generic constant", KindConstant, MakeIdent(`\c`, WithIndex("1"), IndexLike(), Generic()), true},
		{"index-like variable", KindVariable, MakeIdent("x", WithIndex("1"), IndexLike()), false},
		{"index-like relation", KindRelation, MakeIdent("P", WithIndex("1"), IndexLike()), false},
		{"generic word constant", KindConstant, MakeIdent("c", WithIndex("1"), IndexLike(), Generic()), false},
		{"generic word function", KindFunction, MakeIdent("f", Generic()), false},
		{"position without index", KindConstant, MakeIdent("", IndexLike()), false},
		{"empty variable", KindVariable, MakeIdent(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Token(tt.kind, tt.id)

			if tt.valid {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				if e.Symbol() != tt.id.Symbol() {
					t.Errorf("expected symbol %q, got %q", tt.id.Symbol(), e.Symbol())
				}

				return
			}

			if !errors.Is(err, ErrInvalidIdent) {
				t.Errorf("expected ErrInvalidIdent, got %v (%v)", err, e)
			}
		})
	}
}
