package config

import (
	"log/slog"

	server "github.com/filmdesk/filmdesk/pkg/controller/http"
	"github.com/filmdesk/filmdesk/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	sdk "github.com/slack-go/slack"
)

type Slack struct {
	oauthToken    string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token",
			Category:    "Slack",
			Destination: &x.oauthToken,
			Sources:     cli.EnvVars("FILMDESK_SLACK_OAUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("FILMDESK_SLACK_SIGNING_SECRET"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("oauth-token.len", len(x.oauthToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

func (x *Slack) Configure() (*slack.Service, error) {
	if x.oauthToken == "" {
		return nil, goerr.New("slack oauth token is not set")
	}

	client := sdk.New(x.oauthToken)

	return slack.New(client)
}

func (x *Slack) Verifier() server.PayloadVerifier {
	if x.signingSecret == "" {
		return nil
	}

	return server.NewPayloadVerifier(x.signingSecret)
}
