package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  paalam  ", want: "paalam"},
		{name: "lowercase", input: "Good Bye", want: "good bye"},
		{name: "compress multiple spaces", input: "kamusta   ka?", want: "kamusta ka?"},
		{name: "diacritics preserved", input: "Niño", want: "niño"},
		{name: "hyphens preserved", input: "Pilik-mata", want: "pilik-mata"},
		{name: "parentheses preserved", input: "Tainga (Tenga)", want: "tainga (tenga)"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs and spaces", input: "\t inom \t", want: "inom"},
		{name: "sharp s folds", input: "STRASSE", want: "strasse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldKey_ComposesBeforeFolding(t *testing.T) {
	t.Parallel()

	decomposed := "Nin\u0303o"
	composed := "ni\u00f1o"
	if FoldKey(decomposed) != FoldKey(composed) {
		t.Errorf("FoldKey(%q) != FoldKey(%q)", decomposed, composed)
	}
}
