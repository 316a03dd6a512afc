package slack

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/errs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service owns the bot's side of a conversation: it posts the anchor message,
// edits it in place for every later render, and consumes user input messages.
type Service struct {
	client    interfaces.SlackClient
	botUserID string
}

func New(client interfaces.SlackClient) (*Service, error) {
	auth, err := client.AuthTest()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate slack client", goerr.T(errs.TagSlack))
	}

	return &Service{
		client:    client,
		botUserID: auth.UserID,
	}, nil
}

// BotUserID is the bot's own user ID, used to ignore its own message events.
func (x *Service) BotUserID() string {
	return x.botUserID
}

// PostRender posts a new message and returns its timestamp ID. Only the first
// render of a session goes through here; everything after edits in place.
func (x *Service) PostRender(ctx context.Context, channelID string, r chat.Render) (string, error) {
	_, ts, err := x.client.PostMessageContext(ctx, channelID, renderOptions(r)...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message",
			goerr.T(errs.TagSlack), goerr.V("channel", channelID))
	}
	return ts, nil
}

// UpdateRender replaces the content of the anchor message.
func (x *Service) UpdateRender(ctx context.Context, channelID, ts string, r chat.Render) error {
	_, _, _, err := x.client.UpdateMessageContext(ctx, channelID, ts, renderOptions(r)...)
	if err != nil {
		return goerr.Wrap(err, "failed to update message",
			goerr.T(errs.TagSlack), goerr.V("channel", channelID), goerr.V("ts", ts))
	}
	return nil
}

// DeleteMessage removes a consumed user input message so the conversation
// shows only the bot's evolving anchor.
func (x *Service) DeleteMessage(ctx context.Context, channelID, ts string) error {
	if _, _, err := x.client.DeleteMessageContext(ctx, channelID, ts); err != nil {
		return goerr.Wrap(err, "failed to delete message",
			goerr.T(errs.TagSlack), goerr.V("channel", channelID), goerr.V("ts", ts))
	}
	return nil
}

func renderOptions(r chat.Render) []slack.MsgOption {
	return []slack.MsgOption{
		slack.MsgOptionBlocks(buildRenderBlocks(r)...),
		slack.MsgOptionText(r.Text, false),
	}
}
