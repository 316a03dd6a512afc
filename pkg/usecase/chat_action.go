package usecase

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/search"
	"github.com/filmdesk/filmdesk/pkg/domain/model/session"
	"github.com/filmdesk/filmdesk/pkg/service/view"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
)

// HandleBlockAction processes a button press against the user's session.
// Presses on a stale message (no live session, e.g. after a restart) are
// ignored: per the session contract the conversation never started.
func (uc *UseCases) HandleBlockAction(ctx context.Context, user chat.User, channelID string, action chat.ActionID) error {
	defer uc.lockUser(user.ID)()

	logger := logging.From(ctx).With("user", user.ID, "action", action)

	s := uc.lookupSession(user.ID)
	if s == nil || s.AnchorTS == "" {
		logger.Debug("button press without a live session, ignoring")
		return nil
	}
	if channelID != s.ChannelID {
		// A leftover anchor from an earlier conversation in another channel.
		logger.Debug("button press outside the session channel, ignoring",
			"channel", channelID, "session_channel", s.ChannelID)
		return nil
	}
	logger.Info("handling block action", "state", s.State)

	switch action {
	case chat.ActionIDKeywordStart, chat.ActionIDKeywordResultBack:
		s.ClearResults()
		s.State = session.StateKeywordPrompt
		uc.editAnchor(ctx, s, view.KeywordPrompt())

	case chat.ActionIDGenreStart, chat.ActionIDYearBackToGenre, chat.ActionIDGenreResultBack:
		uc.showGenrePrompt(ctx, s)

	case chat.ActionIDTopQueries:
		s.State = session.StateTopQueries
		uc.editAnchor(ctx, s, view.TopQueries(uc.topQueries(ctx)))

	case chat.ActionIDBackToMainMenu:
		s.Reset()
		uc.editAnchor(ctx, s, view.MainMenu())

	case chat.ActionIDSearchNext:
		if !inResultState(s.State) {
			return nil
		}
		if search.NewPager(len(s.Results), s.Page).HasNext() {
			s.Page++
		}
		uc.showResults(ctx, s)

	case chat.ActionIDSearchPrev:
		if !inResultState(s.State) {
			return nil
		}
		if search.NewPager(len(s.Results), s.Page).HasPrev() {
			s.Page--
		}
		uc.showResults(ctx, s)

	default:
		logger.Warn("unknown action, ignoring")
	}

	return nil
}

// showGenrePrompt fetches the genre list and moves the session to the genre
// prompt, clearing any prior genre/year choice and result set.
func (uc *UseCases) showGenrePrompt(ctx context.Context, s *session.Session) {
	s.ClearResults()
	s.Genre = ""
	s.Year = 0
	s.State = session.StateGenrePrompt
	uc.editAnchor(ctx, s, view.GenrePrompt(uc.listGenres(ctx)))
}

func inResultState(state session.State) bool {
	return state == session.StateKeywordResult || state == session.StateGenreYearResult
}
