package slack

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/errs"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// Controller translates Slack event payloads into conversation events.
// Slack expects the HTTP response within 3 seconds, so handlers run in the
// background; errors terminate in errs.Handle.
type Controller struct {
	event       interfaces.ChatEventUsecases
	interaction interfaces.ChatInteractionUsecases
	botUserID   string
}

func New(event interfaces.ChatEventUsecases, interaction interfaces.ChatInteractionUsecases, botUserID string) *Controller {
	return &Controller{
		event:       event,
		interaction: interaction,
		botUserID:   botUserID,
	}
}

func newBackgroundContext(ctx context.Context) context.Context {
	return logging.With(context.Background(), logging.From(ctx))
}

func dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	if IsSync(ctx) {
		if err := handler(newCtx); err != nil {
			errs.Handle(newCtx, err)
		}
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logging.From(newCtx).Error("panic recovered in background goroutine",
					"error", r,
					"stack", string(stack),
				)
				errs.Handle(newCtx, goerr.New("panic recovered in background goroutine",
					goerr.V("recover", r),
					goerr.V("stack", string(stack))))
			}
		}()

		if err := handler(newCtx); err != nil {
			errs.Handle(newCtx, err)
		}
	}()
}

// HandleAppMention starts (or restarts) a conversation: mentioning the bot is
// the transport's "start" command.
func (x *Controller) HandleAppMention(ctx context.Context, event *slackevents.AppMentionEvent) error {
	logger := logging.From(ctx).With("event_ts", event.EventTimeStamp)
	ctx = logging.With(ctx, logger)

	user := chat.User{ID: event.User, Name: event.User}
	channelID := event.Channel

	dispatch(ctx, func(ctx context.Context) error {
		return x.event.HandleStart(ctx, user, channelID)
	})

	return nil
}

// HandleMessage feeds a user's channel message into the state machine as text
// input. Bot messages and message edits/deletions are not input.
func (x *Controller) HandleMessage(ctx context.Context, event *slackevents.MessageEvent) error {
	logger := logging.From(ctx).With("event_ts", event.EventTimeStamp)
	ctx = logging.With(ctx, logger)

	if event.BotID != "" || event.SubType != "" || event.User == x.botUserID {
		return nil
	}

	text := strings.TrimSpace(event.Text)
	if text == "" {
		return nil
	}

	user := chat.User{ID: event.User, Name: event.User}
	channelID := event.Channel
	messageTS := event.TimeStamp

	dispatch(ctx, func(ctx context.Context) error {
		return x.event.HandleText(ctx, user, channelID, messageTS, text)
	})

	return nil
}

// HandleInteraction routes button presses by action ID.
func (x *Controller) HandleInteraction(ctx context.Context, interaction slack.InteractionCallback) error {
	if interaction.Type != slack.InteractionTypeBlockActions {
		return nil
	}

	actions := interaction.ActionCallback.BlockActions
	if len(actions) == 0 {
		return nil
	}

	user := chat.User{
		ID:   interaction.User.ID,
		Name: interaction.User.Name,
	}
	channelID := interaction.Channel.ID
	actionID := chat.ActionID(actions[0].ActionID)

	dispatch(ctx, func(ctx context.Context) error {
		return x.interaction.HandleBlockAction(ctx, user, channelID, actionID)
	})

	return nil
}
