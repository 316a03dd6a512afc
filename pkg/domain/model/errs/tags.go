package errs

import "github.com/m-mizutani/goerr/v2"

var (
	TagInvalidRequest = goerr.NewTag("invalid_request") // 400
	TagNotFound       = goerr.NewTag("not_found")       // 404
	TagUnauthorized   = goerr.NewTag("unauthorized")    // 401
	TagInternal       = goerr.NewTag("internal")        // 500

	// Data-source faults: the state machine degrades these to empty results,
	// they never reach the user.
	TagCatalog   = goerr.NewTag("catalog")
	TagTelemetry = goerr.NewTag("telemetry")
	TagSlack     = goerr.NewTag("slack_error")
)
