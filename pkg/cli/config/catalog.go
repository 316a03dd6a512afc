package config

import (
	"fmt"
	"log/slog"

	"github.com/filmdesk/filmdesk/pkg/adapter/mysql"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Catalog describes the connection to the read-only Sakila MySQL database.
type Catalog struct {
	host     string
	port     int
	user     string
	password string
	database string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-host",
			Usage:       "Catalog MySQL host",
			Category:    "Catalog",
			Value:       "localhost",
			Destination: &x.host,
			Sources:     cli.EnvVars("FILMDESK_CATALOG_HOST"),
		},
		&cli.IntFlag{
			Name:        "catalog-port",
			Usage:       "Catalog MySQL port",
			Category:    "Catalog",
			Value:       3306,
			Destination: &x.port,
			Sources:     cli.EnvVars("FILMDESK_CATALOG_PORT"),
		},
		&cli.StringFlag{
			Name:        "catalog-user",
			Usage:       "Catalog MySQL user",
			Category:    "Catalog",
			Destination: &x.user,
			Sources:     cli.EnvVars("FILMDESK_CATALOG_USER"),
		},
		&cli.StringFlag{
			Name:        "catalog-password",
			Usage:       "Catalog MySQL password",
			Category:    "Catalog",
			Destination: &x.password,
			Sources:     cli.EnvVars("FILMDESK_CATALOG_PASSWORD"),
		},
		&cli.StringFlag{
			Name:        "catalog-database",
			Usage:       "Catalog MySQL database name",
			Category:    "Catalog",
			Value:       "sakila",
			Destination: &x.database,
			Sources:     cli.EnvVars("FILMDESK_CATALOG_DATABASE"),
		},
	}
}

func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", x.host),
		slog.Int("port", x.port),
		slog.String("user", x.user),
		slog.Int("password.len", len(x.password)),
		slog.String("database", x.database),
	)
}

func (x *Catalog) Configure() (*mysql.Catalog, error) {
	if x.user == "" {
		return nil, goerr.New("catalog user is not set")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		x.user, x.password, x.host, x.port, x.database)

	return mysql.New(dsn)
}
