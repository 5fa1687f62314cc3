package repository

import "testing"

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"plain text", "cleaning", "%cleaning%"},
		{"percent matched literally", "%", `%\%%`},
		{"underscore matched literally", "8004_Zurich", `%8004\_Zurich%`},
		{"backslash escaped first", `a\b`, `%a\\b%`},
		{"mixed metacharacters", `100%_\done`, `%100\%\_\\done%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := likePattern(tt.term); got != tt.want {
				t.Errorf("likePattern(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}
