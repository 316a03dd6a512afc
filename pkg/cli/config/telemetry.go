package config

import (
	"log/slog"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/repository"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Telemetry configures the local append-only search log.
type Telemetry struct {
	dbPath string
}

func (x *Telemetry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telemetry-db",
			Usage:       "Path of the telemetry SQLite database (empty: in-memory, lost on restart)",
			Category:    "Telemetry",
			Value:       "top_queries.sqlite",
			Destination: &x.dbPath,
			Sources:     cli.EnvVars("FILMDESK_TELEMETRY_DB"),
		},
	}
}

func (x Telemetry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("db-path", x.dbPath),
	)
}

func (x *Telemetry) Configure() (interfaces.TelemetryRepository, error) {
	if x.dbPath == "" {
		logging.Default().Warn("telemetry db path is empty, using in-memory store")
		return repository.NewMemory(), nil
	}

	return repository.NewSQLite(x.dbPath)
}
