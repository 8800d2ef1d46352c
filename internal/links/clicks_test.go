package links

import (
	"encoding/json"
	"testing"
)

func TestClicksUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"integer", `5`, 5},
		{"float truncated", `7.9`, 7},
		{"numeric string", `"3"`, 3},
		{"padded numeric string", `" 12 "`, 12},
		{"null", `null`, 0},
		{"word", `"many"`, 0},
		{"empty string", `""`, 0},
		{"boolean", `true`, 0},
		{"negative", `-4`, 0},
		{"object", `{"n":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Clicks
			if err := json.Unmarshal([]byte(tt.raw), &c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Int64() != tt.want {
				t.Errorf("got %d, want %d", c.Int64(), tt.want)
			}
		})
	}
}

func TestLinkDecodeToleratesMissingFields(t *testing.T) {
	payload := `[
		{"code":"a1b2c3","target_url":"https://example.com","total_clicks":5,"last_clicked":"2025-01-15T12:00:00Z"},
		{"code":"d4e5f6","target_url":"https://go.dev","total_clicks":"3"},
		{"code":"g7h8i9","target_url":"https://pkg.go.dev","total_clicks":null}
	]`

	var got []Link
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d links, want 3", len(got))
	}
	if total := TotalClicks(got); total != 8 {
		t.Errorf("total clicks = %d, want 8", total)
	}
	if _, ok := got[0].LastClickedAt(); !ok {
		t.Error("expected first link to have a parseable last_clicked")
	}
	if label := got[1].LastClickedLabel(); label != NoClicksLabel {
		t.Errorf("label = %q, want %q", label, NoClicksLabel)
	}
}

func TestLastClickedLabelUnparseable(t *testing.T) {
	l := Link{LastClicked: "yesterday"}
	if got := l.LastClickedLabel(); got != "yesterday" {
		t.Errorf("got %q, want raw value", got)
	}
}
