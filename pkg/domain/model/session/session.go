package session

import (
	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
)

// State is the conversation position of one user. The set is closed; there
// are no implicit states beyond these seven.
type State int

const (
	StateMainMenu State = iota
	StateKeywordPrompt
	StateKeywordResult
	StateGenrePrompt
	StateYearPrompt
	StateGenreYearResult
	StateTopQueries
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateKeywordPrompt:
		return "keyword_prompt"
	case StateKeywordResult:
		return "keyword_result"
	case StateGenrePrompt:
		return "genre_prompt"
	case StateYearPrompt:
		return "year_prompt"
	case StateGenreYearResult:
		return "genre_year_result"
	case StateTopQueries:
		return "top_queries"
	}
	return "unknown"
}

// Session is the per-user conversation record. It is ephemeral: created on
// first interaction, reset on "back to main menu", and dropped when the chat
// session disappears.
type Session struct {
	UserID    string
	ChannelID string

	// AnchorTS is the timestamp ID of the single message this session edits
	// in place. Empty until the first render.
	AnchorTS string

	State      State
	Genre      string
	Year       int
	Results    []film.Film
	Page       int
	BackAction chat.ActionID
}

func New(userID, channelID string) *Session {
	return &Session{
		UserID:    userID,
		ChannelID: channelID,
		State:     StateMainMenu,
	}
}

// Reset returns the session to the main menu and clears everything the menu
// does not need. The anchor message survives so renders keep editing it.
func (s *Session) Reset() {
	s.State = StateMainMenu
	s.Genre = ""
	s.Year = 0
	s.Results = nil
	s.Page = 0
	s.BackAction = ""
}

// ClearResults drops a finished result set when the user navigates back to
// the originating prompt.
func (s *Session) ClearResults() {
	s.Results = nil
	s.Page = 0
	s.BackAction = ""
}
