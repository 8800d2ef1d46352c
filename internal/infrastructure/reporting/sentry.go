package reporting

import (
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Init configures Sentry. An empty DSN leaves reporting disabled and every
// helper in this package becomes a no-op.
func Init(dsn, env, release string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return err
	}
	enabled = true
	return nil
}

// CaptureError reports err with the given tags.
func CaptureError(err error, tags map[string]string) {
	if !enabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events to be sent.
func Flush(timeout time.Duration) {
	if !enabled {
		return
	}
	sentry.Flush(timeout)
}
