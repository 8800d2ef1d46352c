package console

import (
	"strings"
	"sync"
	"time"

	"github.com/IgorGrieder/encurtador-console/internal/constants"
	"github.com/IgorGrieder/encurtador-console/internal/links"
)

const DefaultCopyFeedbackDelay = 2 * time.Second

type Options struct {
	// ShortLinkOrigin is joined with a code to build short and detail URLs.
	ShortLinkOrigin   string
	CopyFeedbackDelay time.Duration

	// AfterFunc schedules delayed callbacks. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer

	// OnChange runs after every view state change, outside the session lock.
	OnChange func()
}

// Session is the console's single state object. It is created empty and
// unloaded, populated by Mount, replaced wholesale after every successful
// mutation and torn down by Close.
type Session struct {
	store     *Store
	api       LinksAPI
	clipboard Clipboard
	confirmer Confirmer

	origin    string
	copyDelay time.Duration
	afterFunc func(time.Duration, func()) Timer
	onChange  func()

	mu         sync.Mutex
	targetURL  string
	customCode string
	codeValid  bool
	creating   bool
	message    string
	severity   constants.Severity
	search     string
	messageGen uint64
	clearTimer Timer
	closed     bool
}

func NewSession(api LinksAPI, clipboard Clipboard, confirmer Confirmer, opts Options) *Session {
	if opts.CopyFeedbackDelay <= 0 {
		opts.CopyFeedbackDelay = DefaultCopyFeedbackDelay
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	return &Session{
		store:     NewStore(api),
		api:       api,
		clipboard: clipboard,
		confirmer: confirmer,
		origin:    opts.ShortLinkOrigin,
		copyDelay: opts.CopyFeedbackDelay,
		afterFunc: opts.AfterFunc,
		onChange:  opts.OnChange,
		codeValid: true,
		severity:  constants.SeverityInfo,
	}
}

// Form is the create form as the operator sees it.
type Form struct {
	TargetURL  string
	CustomCode string
	CodeValid  bool
	Creating   bool
	CanSubmit  bool
}

// View is everything a renderer needs. Summary covers the whole link set,
// Links only the ones matching Search.
type View struct {
	Loaded   bool
	Links    []links.Link
	Summary  links.Summary
	Search   string
	Form     Form
	Message  string
	Severity constants.Severity
}

// View derives aggregates and the filtered list from the current snapshot.
// Nothing is cached between calls.
func (s *Session) View() View {
	snap := s.store.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		Loaded:  snap.Loaded,
		Links:   links.Filter(snap.Links, s.search),
		Summary: links.Summarize(snap.Links),
		Search:  s.search,
		Form: Form{
			TargetURL:  s.targetURL,
			CustomCode: s.customCode,
			CodeValid:  s.codeValid,
			Creating:   s.creating,
			CanSubmit:  s.canSubmitLocked(),
		},
		Message:  s.message,
		Severity: s.severity,
	}
}

// Snapshot exposes the raw link set.
func (s *Session) Snapshot() Snapshot {
	return s.store.Snapshot()
}

// Lookup finds a link by code in the current snapshot.
func (s *Session) Lookup(code string) (links.Link, bool) {
	for _, l := range s.store.Snapshot().Links {
		if l.Code == code {
			return l, true
		}
	}
	return links.Link{}, false
}

func (s *Session) ShortURL(code string) string {
	return links.ShortURL(s.origin, code)
}

func (s *Session) DetailURL(code string) string {
	return links.DetailURL(s.origin, code)
}

func (s *Session) SetTargetURL(v string) {
	s.mu.Lock()
	s.targetURL = v
	s.mu.Unlock()
	s.notify()
}

// SetCustomCode stores the raw code text and re-validates it immediately.
func (s *Session) SetCustomCode(v string) bool {
	s.mu.Lock()
	s.customCode = v
	s.codeValid = links.IsValidCode(v)
	valid := s.codeValid
	s.mu.Unlock()
	s.notify()
	return valid
}

func (s *Session) SetSearch(q string) {
	s.mu.Lock()
	s.search = q
	s.mu.Unlock()
	s.notify()
}

func (s *Session) ClearSearch() {
	s.SetSearch("")
}

func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmitLocked()
}

func (s *Session) canSubmitLocked() bool {
	return !s.creating && strings.TrimSpace(s.targetURL) != "" && s.codeValid
}

// Close cancels pending timers. Later calls fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// setMessage replaces the status message and cancels any pending auto-clear.
// It returns the message generation for scheduleClear.
func (s *Session) setMessage(msg string, sev constants.Severity) uint64 {
	s.mu.Lock()
	s.message = msg
	s.severity = sev
	s.messageGen++
	gen := s.messageGen
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
	s.mu.Unlock()
	s.notify()
	return gen
}

// scheduleClear blanks the message after the copy delay unless a newer
// message replaced it first.
func (s *Session) scheduleClear(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.messageGen != gen {
		return
	}
	s.clearTimer = s.afterFunc(s.copyDelay, func() {
		s.mu.Lock()
		if s.closed || s.messageGen != gen {
			s.mu.Unlock()
			return
		}
		s.message = ""
		s.severity = constants.SeverityInfo
		s.clearTimer = nil
		s.mu.Unlock()
		s.notify()
	})
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
