package links

import (
	"strings"
	"time"
)

// NoClicksLabel is shown for links that were never clicked.
const NoClicksLabel = "no clicks yet"

// Link is the console's read-only projection of a short link owned by the API.
type Link struct {
	Code        string `json:"code"`
	TargetURL   string `json:"target_url"`
	TotalClicks Clicks `json:"total_clicks"`
	LastClicked string `json:"last_clicked,omitempty"`
}

// LastClickedAt parses LastClicked. ok is false when the field is absent or not a timestamp.
func (l Link) LastClickedAt() (time.Time, bool) {
	raw := strings.TrimSpace(l.LastClicked)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateTime} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LastClickedLabel renders LastClicked for display.
func (l Link) LastClickedLabel() string {
	if strings.TrimSpace(l.LastClicked) == "" {
		return NoClicksLabel
	}
	t, ok := l.LastClickedAt()
	if !ok {
		return l.LastClicked
	}
	return t.Local().Format(time.DateTime)
}

// CreateLinkRequest is the body sent to the create endpoint. An empty Code is
// omitted so the server generates one.
type CreateLinkRequest struct {
	TargetURL string `json:"target_url" validate:"required,notblank"`
	Code      string `json:"code,omitempty" validate:"omitempty,shortcode"`
}

// NewCreateLinkRequest trims the raw form values.
func NewCreateLinkRequest(targetURL, code string) CreateLinkRequest {
	return CreateLinkRequest{
		TargetURL: strings.TrimSpace(targetURL),
		Code:      strings.TrimSpace(code),
	}
}

// MutationResult is what the console keeps from a create or delete response:
// the HTTP status and the server's optional {"error": "..."} text.
type MutationResult struct {
	Status int
	Error  string
}

// OK reports a 2xx status.
func (r MutationResult) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
