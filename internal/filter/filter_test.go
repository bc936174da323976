package filter

import (
	"errors"
	"testing"
)

func TestEval(t *testing.T) {
	scope := MapScope{
		Vars: map[string]any{
			"col_a":    7.0,
			"col_name": "Alpha Beta",
			"col_num":  "12",
			"col_int":  3,
			"col_nil":  nil,
		},
		Index:  4,
		Values: []any{7.0, "Alpha Beta"},
	}
	tests := []struct {
		expr string
		want any
	}{
		{"col_a > 5", true},
		{"col_a > 5 && col_a < 7", false},
		{"col_a >= 7 || false", true},
		{"!(col_a == 7)", false},
		{"col_a == '7'", true},
		{"col_a === '7'", false},
		{"col_num == 12", true},
		{"col_num + 1", "121"},
		{"col_a + 1", 8.0},
		{"col_int * 2", 6.0},
		{"-col_a", -7.0},
		{"10 % 4", 2.0},
		{"'b' > 'a'", true},
		{"col_nil == undefined", true},
		{"col_nil === undefined", false},
		{"col_nil == 0", false},
		{"NaN == NaN", false},
		{"col_name < 3", false},
		{"row.index", 4.0},
		{"row.getValue(1)", "Alpha Beta"},
		{"row.index % 2 == 0", true},
		{`lower(col_name)`, "alpha beta"},
		{`contains(lower(String(col_name)), "beta")`, true},
		{`col_name.toLowerCase().indexOf("beta") !== -1`, true},
		{`col_name.includes("Gamma")`, false},
		{`col_name.length`, 10.0},
		{`isNaN(col_name)`, true},
		{`abs(-2.5)`, 2.5},
		{`"x" + col_nil`, "xnull"},
		{`true == 1`, true},
		{`1e3 == 1000`, true},
		{`.5 + .5`, 1.0},
		{`'it\'s'`, "it's"},
		{`0 && col_missing`, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			x, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.expr, err)
			}
			got, err := x.Eval(scope)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Fatalf("Eval(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{"", "col_a >", "(col_a", "col_a = 1", "'open", "a.", "1 2", "#"} {
		t.Run(expr, func(t *testing.T) {
			if _, err := Parse(expr); !errors.Is(err, ErrSyntax) {
				t.Fatalf("Parse(%q) error = %v, want ErrSyntax", expr, err)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	scope := MapScope{Vars: map[string]any{"col_a": 1.0, "col_nil": nil}}
	tests := []struct {
		expr string
		want error
	}{
		{"col_b > 1", ErrUndefined},
		{"missing(1)", ErrUndefined},
		{"lower(col_a, 2)", ErrType},
		{"col_a(1)", ErrType},
		{"col_nil.length", ErrType},
		{"col_nil.toString()", ErrType},
		{"row.nope(1)", ErrType},
		{"col_a.frobnicate()", ErrType},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			x, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.expr, err)
			}
			if _, err := x.Eval(scope); !errors.Is(err, tt.want) {
				t.Fatalf("Eval(%q) error = %v, want %v", tt.expr, err, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	scope := MapScope{Vars: map[string]any{"col_a": 3.0}}
	tests := []struct {
		expr string
		want bool
	}{
		{"col_a > 5", false},
		{"col_a", true},
		{"undefined", true},
		{"null", false},
		{"''", false},
		{"'x'", true},
	}
	for _, tt := range tests {
		x, err := Parse(tt.expr)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.expr, err)
		}
		got, err := x.Match(scope)
		if err != nil {
			t.Fatalf("Match(%q) error = %v", tt.expr, err)
		}
		if got != tt.want {
			t.Fatalf("Match(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}
