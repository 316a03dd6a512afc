package errs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Handle is the terminal sink for errors that escaped an event cycle. It logs
// and reports to Sentry; nothing propagates further and nothing is shown to
// the chat user.
func Handle(ctx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[CRITICAL] slog crashed during error handling: original_error=%s, slog_panic=%v\n",
				err.Error(), r)
		}
	}()

	logAttrs := []any{slog.Any("error", err)}
	logger := logging.From(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range goerr.Values(err) {
			scope.SetExtra(k, v)
		}
	})
	if evID := hub.CaptureException(err); evID != nil {
		logAttrs = append(logAttrs, slog.Any("sentry.id", evID))
	}

	logger.Error("Error: "+err.Error(), logAttrs...)
}
