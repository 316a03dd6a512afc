package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/filmdesk/filmdesk/pkg/cli/config"
	"github.com/filmdesk/filmdesk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// cmdTop prints the telemetry aggregation without going through Slack.
// Operator convenience for inspecting what people search for.
func cmdTop() *cli.Command {
	var (
		telemetryCfg config.Telemetry
		limit        int
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Maximum number of rows",
				Value:       10,
				Destination: &limit,
			},
		},
		telemetryCfg.Flags(),
	)

	return &cli.Command{
		Name:  "top",
		Usage: "Print the top search queries",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := telemetryCfg.Configure()
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			rows, err := repo.TopQueries(ctx, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tCOUNT")
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%d\n", row.Value, row.Count)
			}
			return w.Flush()
		},
	}
}
