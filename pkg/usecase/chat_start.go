package usecase

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/service/view"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// HandleStart opens (or restarts) a conversation. Unlike every other render,
// start posts a brand new message and records its timestamp as the session's
// anchor; any previous anchor is simply left behind in the transcript.
func (uc *UseCases) HandleStart(ctx context.Context, user chat.User, channelID string) error {
	defer uc.lockUser(user.ID)()
	return uc.startConversation(ctx, user, channelID)
}

// startConversation is the body of HandleStart; callers hold the user lock.
func (uc *UseCases) startConversation(ctx context.Context, user chat.User, channelID string) error {
	logger := logging.From(ctx).With("user", user.ID, "channel", channelID)
	logger.Info("starting conversation")

	s := uc.openSession(user.ID, channelID)
	s.Reset()

	ts, err := uc.slackSvc.PostRender(ctx, channelID, view.MainMenu())
	if err != nil {
		uc.dropSession(user.ID)
		return goerr.Wrap(err, "failed to post main menu", goerr.V("user", user.ID))
	}
	s.AnchorTS = ts

	return nil
}
