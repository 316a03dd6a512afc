package usecase

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/session"
	"github.com/filmdesk/filmdesk/pkg/service/view"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
)

// editAnchor replaces the content of the session's anchor message. If the
// edit fails the anchor is assumed gone (deleted channel message, revoked
// bot), and the session is dropped as if it never started.
func (uc *UseCases) editAnchor(ctx context.Context, s *session.Session, r chat.Render) {
	if err := uc.slackSvc.UpdateRender(ctx, s.ChannelID, s.AnchorTS, r); err != nil {
		logging.From(ctx).Warn("anchor message is gone, dropping session",
			"user", s.UserID, "channel", s.ChannelID, "ts", s.AnchorTS, logging.ErrAttr(err))
		uc.dropSession(s.UserID)
	}
}

// showResults renders the current page of the session's stored result set.
func (uc *UseCases) showResults(ctx context.Context, s *session.Session) {
	uc.editAnchor(ctx, s, view.ResultsPage(s.Results, s.Page, s.BackAction))
}
