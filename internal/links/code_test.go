package links

import "testing"

func TestIsValidCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"empty is valid", "", true},
		{"whitespace only is valid", "   ", true},
		{"five chars", "abc12", false},
		{"six chars", "abc123", true},
		{"seven chars mixed case", "abcDE12", true},
		{"eight chars", "ABCDEFGH", true},
		{"nine chars", "abcdefghi", false},
		{"dash", "abc-123", false},
		{"underscore", "abc_123", false},
		{"inner space", "abc 123", false},
		{"surrounding spaces trimmed", "  abc123  ", true},
		{"non ascii letter", "abcdé12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCode(tt.code); got != tt.want {
				t.Errorf("IsValidCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
