package interfaces

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackClient is the subset of the Slack SDK the bot needs: post a message,
// edit it in place, and remove consumed user input.
type SlackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	DeleteMessageContext(ctx context.Context, channelID, timestamp string) (string, string, error)
	AuthTest() (*slack.AuthTestResponse, error)
}
