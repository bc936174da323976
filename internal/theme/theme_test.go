package theme

import "testing"

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		dark bool
	}{
		{"Light", false},
		{"Dark", true},
		{"dark", true},
		{"solarized", false},
	}
	for _, tt := range tests {
		if got := ByName(tt.name).Dark; got != tt.dark {
			t.Fatalf("ByName(%q).Dark = %v, want %v", tt.name, got, tt.dark)
		}
	}
}

func TestRowBackground(t *testing.T) {
	p := Light()
	if got := p.RowBackground(0); got != "#f9f9f9" {
		t.Fatalf("RowBackground(0) = %q, want #f9f9f9", got)
	}
	if got := p.RowBackground(1); got != "" {
		t.Fatalf("RowBackground(1) = %q, want empty", got)
	}
}
