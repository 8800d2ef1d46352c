package console

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/IgorGrieder/encurtador-console/internal/constants"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/logger"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/reporting"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/telemetry"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/validation"
	"github.com/IgorGrieder/encurtador-console/internal/links"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Mount performs the initial load.
func (s *Session) Mount(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh re-fetches the full link set. A failure keeps the previous links
// and surfaces an error message.
func (s *Session) Refresh(ctx context.Context) (err error) {
	if s.isClosed() {
		return ErrClosed
	}

	ctx, span := telemetry.StartSpan(ctx, "console.refresh")
	defer func() { telemetry.EndSpan(span, err) }()

	if err = s.store.Refresh(ctx); err != nil {
		logger.Error("failed to load links", zap.Error(err))
		reporting.CaptureError(err, map[string]string{"action": "list"})
		recordAction("list", outcomeTransport)
		s.setMessage(constants.MsgLoadFailed, constants.SeverityError)
		return err
	}

	recordAction("list", outcomeOK)
	s.notify()
	return nil
}

// Submit sends the create form. Nothing is sent unless the target URL is set
// and the custom code is valid or blank. On 201 the form is cleared and the
// list re-fetched once; on any failure the form keeps its values.
func (s *Session) Submit(ctx context.Context) (err error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.creating:
		s.mu.Unlock()
		recordAction("create", outcomeRefused)
		return ErrCreateInFlight
	case !s.canSubmitLocked():
		s.mu.Unlock()
		recordAction("create", outcomeRefused)
		return ErrSubmitDisabled
	}
	req := links.NewCreateLinkRequest(s.targetURL, s.customCode)
	s.creating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.creating = false
		s.mu.Unlock()
		s.notify()
	}()

	if verr := validation.Validate(req); verr != nil {
		recordAction("create", outcomeRefused)
		return fmt.Errorf("%w: invalid %s", ErrSubmitDisabled, validation.FirstInvalidField(verr))
	}

	ctx, span := telemetry.StartSpan(ctx, "console.create",
		trace.WithAttributes(attribute.Bool("link.custom_code", req.Code != "")))
	defer func() { telemetry.EndSpan(span, err) }()

	s.setMessage("", constants.SeverityInfo)

	res, err := s.api.Create(ctx, req)
	if err != nil {
		logger.Error("create link request failed", zap.Error(err), zap.String("target_url", req.TargetURL))
		reporting.CaptureError(err, map[string]string{"action": "create"})
		recordAction("create", outcomeTransport)
		s.setMessage(constants.MsgNetworkError, constants.SeverityError)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.Status))

	if res.Status != http.StatusCreated {
		msg := createFailureMessage(res)
		logger.Info("create link rejected",
			zap.Int("status", res.Status),
			zap.String("code", req.Code),
			zap.String("message", msg),
		)
		recordAction("create", outcomeRejected)
		s.setMessage(msg, constants.SeverityError)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, res.Status, msg)
	}

	logger.Info("link created", zap.String("code", req.Code), zap.String("target_url", req.TargetURL))
	recordAction("create", outcomeOK)

	s.mu.Lock()
	s.targetURL = ""
	s.customCode = ""
	s.codeValid = true
	s.mu.Unlock()
	s.setMessage(constants.MsgLinkCreated, constants.SeveritySuccess)

	// The refresh outcome is reported through the status message.
	_ = s.Refresh(ctx)
	return nil
}

// createFailureMessage prefers the server's text and falls back to a default
// per status.
func createFailureMessage(res links.MutationResult) string {
	if msg := strings.TrimSpace(res.Error); msg != "" {
		return msg
	}
	switch res.Status {
	case http.StatusConflict:
		return constants.MsgCodeExists
	case http.StatusBadRequest:
		return constants.MsgInvalidInput
	default:
		return fmt.Sprintf(constants.MsgCreateFailedFmt, res.Status)
	}
}

// Delete asks for confirmation naming code, then deletes it. A declined
// confirmation sends nothing and changes nothing. Failures are never retried.
func (s *Session) Delete(ctx context.Context, code string) (err error) {
	if s.isClosed() {
		return ErrClosed
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrEmptyCode
	}

	ok, cerr := s.confirmer.Confirm(ctx, fmt.Sprintf(constants.MsgDeletePromptFmt, code))
	if cerr != nil {
		logger.Warn("delete confirmation failed", zap.Error(cerr), zap.String("code", code))
		recordAction("delete", outcomeCancelled)
		return fmt.Errorf("%w: %v", ErrCancelled, cerr)
	}
	if !ok {
		recordAction("delete", outcomeCancelled)
		return ErrCancelled
	}

	ctx, span := telemetry.StartSpan(ctx, "console.delete",
		trace.WithAttributes(attribute.String("link.code", code)))
	defer func() { telemetry.EndSpan(span, err) }()

	res, err := s.api.Delete(ctx, code)
	if err != nil {
		logger.Error("delete link request failed", zap.Error(err), zap.String("code", code))
		reporting.CaptureError(err, map[string]string{"action": "delete", "code": code})
		recordAction("delete", outcomeTransport)
		s.setMessage(constants.MsgDeleteFailed, constants.SeverityError)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !res.OK() {
		logger.Info("delete link rejected", zap.Int("status", res.Status), zap.String("code", code))
		recordAction("delete", outcomeRejected)
		s.setMessage(constants.MsgDeleteFailed, constants.SeverityError)
		return fmt.Errorf("%w: status %d", ErrRejected, res.Status)
	}

	logger.Info("link deleted", zap.String("code", code))
	recordAction("delete", outcomeOK)
	s.setMessage(constants.MsgLinkDeleted, constants.SeveritySuccess)

	_ = s.Refresh(ctx)
	return nil
}

// Copy writes the short URL for code to the clipboard. The success message
// clears itself after the copy delay unless something newer replaced it.
func (s *Session) Copy(ctx context.Context, code string) (err error) {
	if s.isClosed() {
		return ErrClosed
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrEmptyCode
	}

	_, span := telemetry.StartSpan(ctx, "console.copy",
		trace.WithAttributes(attribute.String("link.code", code)))
	defer func() { telemetry.EndSpan(span, err) }()

	if werr := s.clipboard.WriteAll(s.ShortURL(code)); werr != nil {
		logger.Warn("clipboard write failed", zap.Error(werr), zap.String("code", code))
		recordAction("copy", outcomeTransport)
		s.setMessage(constants.MsgCopyFailed, constants.SeverityError)
		return fmt.Errorf("%w: %v", ErrClipboard, werr)
	}

	recordAction("copy", outcomeOK)
	gen := s.setMessage(constants.MsgCopied, constants.SeveritySuccess)
	s.scheduleClear(gen)
	return nil
}
