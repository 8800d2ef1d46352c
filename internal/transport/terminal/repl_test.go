package terminal

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/IgorGrieder/encurtador-console/internal/console"
	"github.com/IgorGrieder/encurtador-console/internal/constants"
	"github.com/IgorGrieder/encurtador-console/internal/links"
)

type stubAPI struct {
	links   []links.Link
	listErr error

	createStatus int
	created      []links.CreateLinkRequest
	// createStarted is closed when Create begins; Create then waits for createRelease.
	createStarted chan struct{}
	createRelease chan struct{}

	deleteStatus int
	deleted      []string
}

func (s *stubAPI) List(context.Context) ([]links.Link, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]links.Link(nil), s.links...), nil
}

func (s *stubAPI) Create(_ context.Context, req links.CreateLinkRequest) (links.MutationResult, error) {
	if s.createStarted != nil {
		close(s.createStarted)
		<-s.createRelease
	}
	s.created = append(s.created, req)
	if s.createStatus == http.StatusCreated {
		s.links = append(s.links, links.Link{Code: req.Code, TargetURL: req.TargetURL})
	}
	return links.MutationResult{Status: s.createStatus}, nil
}

func (s *stubAPI) Delete(_ context.Context, code string) (links.MutationResult, error) {
	s.deleted = append(s.deleted, code)
	return links.MutationResult{Status: s.deleteStatus}, nil
}

type stubClipboard struct{ text string }

func (c *stubClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestREPL(t *testing.T, api *stubAPI, input string) (*REPL, *console.Session, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	prompter := NewPrompter(strings.NewReader(input), out)
	session := console.NewSession(api, &stubClipboard{}, prompter, console.Options{
		ShortLinkOrigin: "https://sho.rt",
	})
	t.Cleanup(session.Close)
	return NewREPL(session, prompter, out), session, out
}

func sampleLinks() []links.Link {
	return []links.Link{
		{Code: "abc123", TargetURL: "https://example.com", TotalClicks: 5},
		{Code: "zzz999", TargetURL: "https://golang.org", TotalClicks: 9, LastClicked: "2024-01-02T03:04:05Z"},
	}
}

func TestREPL_ListBeforeMountShowsLoading(t *testing.T) {
	r, _, out := newTestREPL(t, &stubAPI{}, "")

	if err := r.Exec(context.Background(), "ls"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), loadingText) {
		t.Fatalf("expected loading text, got %q", out.String())
	}
}

func TestREPL_ListAndSearch(t *testing.T) {
	r, session, out := newTestREPL(t, &stubAPI{links: sampleLinks()}, "")
	if err := session.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}

	if err := r.Exec(context.Background(), "ls"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"CODE", "abc123", "zzz999", links.NoClicksLabel} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := r.Exec(context.Background(), "search GOLANG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = out.String()
	if strings.Contains(got, "abc123") || !strings.Contains(got, "zzz999") {
		t.Fatalf("search output not filtered:\n%s", got)
	}

	out.Reset()
	_ = r.Exec(context.Background(), "search nothing-here")
	if !strings.Contains(out.String(), noMatchText) {
		t.Fatalf("expected empty-search text, got %q", out.String())
	}

	out.Reset()
	_ = r.Exec(context.Background(), "clear")
	if !strings.Contains(out.String(), "abc123") {
		t.Fatalf("clear should restore full list, got %q", out.String())
	}
}

func TestREPL_StatsIgnoreSearch(t *testing.T) {
	r, session, out := newTestREPL(t, &stubAPI{links: sampleLinks()}, "")
	_ = session.Mount(context.Background())
	session.SetSearch("example")

	if err := r.Exec(context.Background(), "stats"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Total Links", "2", "14", "zzz999"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}
}

func TestREPL_CodeShowsInlineError(t *testing.T) {
	r, _, out := newTestREPL(t, &stubAPI{}, "")

	_ = r.Exec(context.Background(), "code abc")
	if !strings.Contains(out.String(), constants.MsgInvalidCode) {
		t.Fatalf("expected inline validation error, got %q", out.String())
	}

	out.Reset()
	_ = r.Exec(context.Background(), "code abc123")
	if out.Len() != 0 {
		t.Fatalf("valid code should print nothing, got %q", out.String())
	}
}

func TestREPL_AddCreatesLink(t *testing.T) {
	api := &stubAPI{createStatus: http.StatusCreated}
	r, session, out := newTestREPL(t, api, "")
	_ = session.Mount(context.Background())

	if err := r.Exec(context.Background(), "add https://example.com abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.created) != 1 || api.created[0].Code != "abc123" {
		t.Fatalf("unexpected create calls: %+v", api.created)
	}
	if !strings.Contains(out.String(), constants.MsgLinkCreated) {
		t.Fatalf("expected success message, got %q", out.String())
	}
	if f := session.View().Form; f.TargetURL != "" || f.CustomCode != "" {
		t.Fatalf("form should be cleared, got %+v", f)
	}
}

func TestREPL_SubmitDisabledSendsNothing(t *testing.T) {
	api := &stubAPI{createStatus: http.StatusCreated}
	r, _, out := newTestREPL(t, api, "")

	_ = r.Exec(context.Background(), "submit")
	if len(api.created) != 0 {
		t.Fatalf("expected no create call, got %d", len(api.created))
	}
	if !strings.Contains(out.String(), "Target URL is required.") {
		t.Fatalf("expected disabled reason, got %q", out.String())
	}
}

func TestREPL_AddConflictKeepsForm(t *testing.T) {
	api := &stubAPI{createStatus: http.StatusConflict}
	r, session, out := newTestREPL(t, api, "")

	_ = r.Exec(context.Background(), "add https://example.com abc123")
	if !strings.Contains(out.String(), constants.MsgCodeExists) {
		t.Fatalf("expected conflict message, got %q", out.String())
	}
	if f := session.View().Form; f.TargetURL != "https://example.com" || f.CustomCode != "abc123" {
		t.Fatalf("form should keep its values, got %+v", f)
	}
}

func TestREPL_DeleteConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		wantDeleted int
		wantOutput  string
	}{
		{name: "confirmed", answer: "y\n", wantDeleted: 1, wantOutput: constants.MsgLinkDeleted},
		{name: "yes spelled out", answer: "YES\n", wantDeleted: 1, wantOutput: constants.MsgLinkDeleted},
		{name: "declined", answer: "n\n", wantDeleted: 0, wantOutput: "Cancelled."},
		{name: "empty answer", answer: "\n", wantDeleted: 0, wantOutput: "Cancelled."},
		{name: "input closed", answer: "", wantDeleted: 0, wantOutput: "Cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{links: sampleLinks(), deleteStatus: http.StatusNoContent}
			r, _, out := newTestREPL(t, api, tt.answer)

			if err := r.Exec(context.Background(), "rm abc123"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(api.deleted) != tt.wantDeleted {
				t.Fatalf("expected %d delete calls, got %d", tt.wantDeleted, len(api.deleted))
			}
			if !strings.Contains(out.String(), "Delete link abc123? [y/N]: ") {
				t.Errorf("expected confirmation prompt, got %q", out.String())
			}
			if !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("expected %q in output, got %q", tt.wantOutput, out.String())
			}
		})
	}
}

func TestREPL_ViewShowsDetailLocation(t *testing.T) {
	r, session, out := newTestREPL(t, &stubAPI{links: sampleLinks()}, "")
	_ = session.Mount(context.Background())

	if err := r.Exec(context.Background(), "view zzz999"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"https://sho.rt/zzz999", "https://sho.rt/code/zzz999", "https://golang.org"} {
		if !strings.Contains(got, want) {
			t.Errorf("view output missing %q:\n%s", want, got)
		}
	}

	if err := r.Exec(context.Background(), "view nope00"); err == nil {
		t.Fatal("expected error for unknown code")
	}
}

func TestREPL_CopyPrintsFeedback(t *testing.T) {
	r, _, out := newTestREPL(t, &stubAPI{}, "")

	if err := r.Exec(context.Background(), "copy abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), constants.MsgCopied) {
		t.Fatalf("expected copy feedback, got %q", out.String())
	}
}

func TestREPL_RefreshFailureShowsMessage(t *testing.T) {
	r, _, out := newTestREPL(t, &stubAPI{listErr: errors.New("boom")}, "")

	if err := r.Exec(context.Background(), "refresh"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), constants.MsgLoadFailed) {
		t.Fatalf("expected load failure message, got %q", out.String())
	}
}

func TestREPL_UnknownCommand(t *testing.T) {
	r, _, _ := newTestREPL(t, &stubAPI{}, "")

	if err := r.Exec(context.Background(), "frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if err := r.Exec(context.Background(), "   "); err != nil {
		t.Fatalf("blank line should be ignored, got %v", err)
	}
}

func TestREPL_RunStopsOnQuitAndEOF(t *testing.T) {
	api := &stubAPI{links: sampleLinks()}

	r, _, out := newTestREPL(t, api, "help\nquit\nls\n")
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "CODE") {
		t.Fatalf("commands after quit should not run, got %q", out.String())
	}

	r, _, _ = newTestREPL(t, api, "help\n")
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("EOF should end the loop cleanly, got %v", err)
	}
}

func TestPrompter_ConfirmCancelledContext(t *testing.T) {
	p := NewPrompter(strings.NewReader("y\n"), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := p.Confirm(ctx, "Delete link abc123?")
	if ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got ok=%v err=%v", ok, err)
	}
}

func TestREPL_SubmitShowsCreatingWhileInFlight(t *testing.T) {
	api := &stubAPI{
		createStatus:  http.StatusCreated,
		createStarted: make(chan struct{}),
		createRelease: make(chan struct{}),
	}
	out := &syncBuffer{}
	prompter := NewPrompter(strings.NewReader(""), out)
	session := console.NewSession(api, &stubClipboard{}, prompter, console.Options{
		ShortLinkOrigin: "https://sho.rt",
	})
	t.Cleanup(session.Close)
	r := NewREPL(session, prompter, out)

	done := make(chan error, 1)
	go func() { done <- r.Exec(context.Background(), "add https://example.com abc123") }()

	<-api.createStarted
	if got := out.String(); got != creatingText+"\n" {
		t.Errorf("output while in flight = %q, want %q", got, creatingText+"\n")
	}
	if !session.View().Form.Creating {
		t.Error("form should report creating while the request is in flight")
	}

	close(api.createRelease)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), constants.MsgLinkCreated) {
		t.Errorf("expected success message, got %q", out.String())
	}
	if session.View().Form.Creating {
		t.Error("creating flag should be cleared after the response")
	}
}

func TestREPL_CommandSplitsOnAnyWhitespace(t *testing.T) {
	api := &stubAPI{links: sampleLinks(), deleteStatus: http.StatusNoContent}
	r, session, out := newTestREPL(t, api, "y\n")
	_ = session.Mount(context.Background())

	if err := r.Exec(context.Background(), "rm\tabc123"); err != nil {
		t.Fatalf("tab-separated command rejected: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "abc123" {
		t.Fatalf("unexpected delete calls: %v", api.deleted)
	}

	out.Reset()
	if err := r.Exec(context.Background(), "view\t  zzz999"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "https://sho.rt/code/zzz999") {
		t.Errorf("view output missing detail location: %q", out.String())
	}

	if err := r.Exec(context.Background(), "stats"); err != nil {
		t.Fatalf("single-word command rejected: %v", err)
	}
}
