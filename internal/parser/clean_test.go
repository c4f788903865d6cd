package parser

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "PAYMENT TO XYZ", "payment to xyz"},
		{"strips punctuation", "UPI/P2M-123/swiggy!", "upip2m123swiggy"},
		{"keeps digits and spaces", "REF NO 12345", "ref no 12345"},
		{"trims ends", "  NEFT TRANSFER  ", "neft transfer"},
		{"empty", "", ""},
		{"only punctuation", "***---***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
