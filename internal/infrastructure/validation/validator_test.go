package validation

import (
	"testing"

	"github.com/IgorGrieder/encurtador-console/internal/links"
)

func TestValidateCreateLinkRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       links.CreateLinkRequest
		wantField string
	}{
		{"url only", links.CreateLinkRequest{TargetURL: "https://example.com"}, ""},
		{"url and code", links.CreateLinkRequest{TargetURL: "https://example.com", Code: "abcDE12"}, ""},
		{"blank url", links.CreateLinkRequest{TargetURL: "   "}, "target_url"},
		{"short code", links.CreateLinkRequest{TargetURL: "https://example.com", Code: "abc12"}, "code"},
		{"code with dash", links.CreateLinkRequest{TargetURL: "https://example.com", Code: "abc-123"}, "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := FirstInvalidField(err); got != tt.wantField {
				t.Errorf("first invalid field = %q, want %q (err: %v)", got, tt.wantField, err)
			}
		})
	}
}

func TestHTTPURLTag(t *testing.T) {
	type target struct {
		URL string `json:"url" validate:"http_url"`
	}

	tests := []struct {
		raw   string
		valid bool
	}{
		{"https://example.com", true},
		{"http://localhost:8080", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := Validate(target{URL: tt.raw})
			if (err == nil) != tt.valid {
				t.Errorf("Validate(%q) error = %v, want valid=%v", tt.raw, err, tt.valid)
			}
		})
	}
}

func TestFirstInvalidFieldNonValidationError(t *testing.T) {
	if got := FirstInvalidField(nil); got != "" {
		t.Errorf("got %q for nil error", got)
	}
}
