package chat

// ActionID identifies a button press. The values travel as interaction
// callback action IDs, so they must stay stable.
type ActionID string

func (id ActionID) String() string {
	return string(id)
}

const (
	ActionIDKeywordStart      ActionID = "go_keyword_start"
	ActionIDGenreStart        ActionID = "go_genre_start"
	ActionIDTopQueries        ActionID = "go_top_queries"
	ActionIDBackToMainMenu    ActionID = "back_to_main_menu"
	ActionIDKeywordResultBack ActionID = "go_keyword_result_back"
	ActionIDYearBackToGenre   ActionID = "go_year_back_to_genre"
	ActionIDGenreResultBack   ActionID = "go_genre_result_back"
	ActionIDSearchNext        ActionID = "search_next"
	ActionIDSearchPrev        ActionID = "search_prev"
)

// Button is one pressable option under a rendered message.
type Button struct {
	Label  string
	Action ActionID
}

// Render is the transport-neutral output of the state machine: message text
// plus rows of buttons. The chat transport decides how to draw it.
type Render struct {
	Text    string
	Buttons [][]Button
}

// User identifies the person a session belongs to.
type User struct {
	ID   string
	Name string
}
