package interfaces

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
)

// TelemetryRepository is the append-only search log behind "top queries".
type TelemetryRepository interface {
	// Record appends one search. The value is case-folded to lower case
	// before storage.
	Record(ctx context.Context, kind telemetry.Kind, value string) error

	// TopQueries groups records by exact value and returns at most limit
	// rows ordered by count descending. Ties resolve by first insertion.
	TopQueries(ctx context.Context, limit int) ([]telemetry.QueryCount, error)

	Close() error
}
