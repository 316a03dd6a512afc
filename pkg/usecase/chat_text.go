package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
	"github.com/filmdesk/filmdesk/pkg/domain/model/session"
	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
	"github.com/filmdesk/filmdesk/pkg/service/view"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
)

// HandleText processes free text from a user. The user's own message is
// always consumed (deleted) first so the transcript keeps only the bot's
// evolving anchor message. Text arriving with no anchor is ignored silently.
func (uc *UseCases) HandleText(ctx context.Context, user chat.User, channelID, messageTS, text string) error {
	defer uc.lockUser(user.ID)()

	logger := logging.From(ctx).With("user", user.ID, "channel", channelID)

	s := uc.lookupSession(user.ID)
	if s == nil || s.AnchorTS == "" {
		// "start" typed into the channel opens a conversation just like a
		// mention does. Anything else without a session is noise.
		if strings.EqualFold(strings.TrimSpace(text), "start") {
			if err := uc.slackSvc.DeleteMessage(ctx, channelID, messageTS); err != nil {
				logger.Warn("failed to consume user message", "ts", messageTS, logging.ErrAttr(err))
			}
			return uc.startConversation(ctx, user, channelID)
		}
		logger.Debug("text without a live session, ignoring")
		return nil
	}

	if err := uc.slackSvc.DeleteMessage(ctx, channelID, messageTS); err != nil {
		// The transcript keeps the user's message; everything else works.
		logger.Warn("failed to consume user message", "ts", messageTS, logging.ErrAttr(err))
	}

	logger.Info("handling text input", "state", s.State)

	switch s.State {
	case session.StateKeywordPrompt:
		uc.keywordEntered(ctx, s, text)

	case session.StateGenrePrompt:
		uc.genreEntered(ctx, s, text)

	case session.StateYearPrompt:
		uc.yearEntered(ctx, s, text)

	default:
		// Result pages and menus take no free text; the input was consumed
		// above and nothing else happens.
	}

	return nil
}

func (uc *UseCases) keywordEntered(ctx context.Context, s *session.Session, keyword string) {
	films := uc.searchByKeyword(ctx, keyword)
	if len(films) > 0 {
		uc.recordSearch(ctx, telemetry.KindKeyword, keyword)
	}

	s.Results = films
	s.Page = 0
	s.BackAction = chat.ActionIDKeywordResultBack
	s.State = session.StateKeywordResult
	uc.showResults(ctx, s)
}

func (uc *UseCases) genreEntered(ctx context.Context, s *session.Session, input string) {
	// An unrecognized genre overwrites the previous (also unrecognized)
	// value and re-prompts; repeated failures do not accumulate state.
	s.Genre = film.NormalizeGenre(input)

	years := uc.yearsForGenre(ctx, s.Genre)
	if len(years) == 0 {
		uc.editAnchor(ctx, s, view.GenreNotFound(s.Genre, uc.listGenres(ctx)))
		return
	}

	s.State = session.StateYearPrompt
	uc.editAnchor(ctx, s, view.YearPrompt(s.Genre, years))
}

func (uc *UseCases) yearEntered(ctx context.Context, s *session.Session, input string) {
	trimmed := strings.TrimSpace(input)

	// Unparsable input becomes year 0, which matches nothing and falls into
	// the re-prompt branch below.
	year, err := strconv.Atoi(trimmed)
	if err != nil {
		year = 0
	}
	s.Year = year

	films := uc.searchByGenreAndYear(ctx, s.Genre, year)
	if len(films) == 0 {
		uc.editAnchor(ctx, s, view.YearNotFound(trimmed, s.Genre, uc.yearsForGenre(ctx, s.Genre)))
		return
	}

	uc.recordSearch(ctx, telemetry.KindGenreYear, telemetry.GenreYearValue(s.Genre, year))

	s.Results = films
	s.Page = 0
	s.BackAction = chat.ActionIDGenreResultBack
	s.State = session.StateGenreYearResult
	uc.showResults(ctx, s)
}
