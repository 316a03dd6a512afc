package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filmdesk/filmdesk/pkg/cli/config"
	server "github.com/filmdesk/filmdesk/pkg/controller/http"
	slack_ctrl "github.com/filmdesk/filmdesk/pkg/controller/slack"
	"github.com/filmdesk/filmdesk/pkg/usecase"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/filmdesk/filmdesk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr         string
		slackCfg     config.Slack
		catalogCfg   config.Catalog
		telemetryCfg config.Telemetry
		sentryCfg    config.Sentry
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("FILMDESK_ADDR"),
				Usage:       "Listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
		},
		slackCfg.Flags(),
		catalogCfg.Flags(),
		telemetryCfg.Flags(),
		sentryCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the bot server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.From(ctx).Info("starting filmdesk",
				"addr", addr,
				"slack", slackCfg,
				"catalog", catalogCfg,
				"telemetry", telemetryCfg,
				"sentry", sentryCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return err
			}

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}
			defer safe.Close(ctx, catalog)

			telemetryRepo, err := telemetryCfg.Configure()
			if err != nil {
				return err
			}
			defer safe.Close(ctx, telemetryRepo)

			uc := usecase.New(
				usecase.WithSlackService(slackSvc),
				usecase.WithCatalog(catalog),
				usecase.WithTelemetry(telemetryRepo),
			)

			ctrl := slack_ctrl.New(uc, uc, slackSvc.BotUserID())

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(ctrl, server.WithSlackVerifier(slackCfg.Verifier())),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
