package view

import (
	"fmt"
	"strings"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
	"github.com/filmdesk/filmdesk/pkg/domain/model/search"
	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	mainMenuText = "🎬 Welcome to the *S A K I L A* Bot! 🎬\n\n" +
		"Choose an option below to get started.\n" +
		"Browse by a keyword, pick a genre with a specific year, " +
		"or explore the top queries from other users.\n\n" +
		"Have fun searching! 😎"

	keywordMenuText = "🔎 *Search by Keyword*\n\n" +
		"Type a word or phrase below to find matching films.\n" +
		"For example, you can try _love_, _action_, or _space_."

	genreMenuHeader = "🎭 *Genre & Year Search*\n\n" +
		"Below are the available genres (with the number of films):"

	backButtonLabel = "⬅️ Back"
)

// synopsisLimit is the number of characters of a film description shown in a
// result line before truncation.
const synopsisLimit = 100

var titleCaser = cases.Title(language.English)

func backRow(action chat.ActionID) []chat.Button {
	return []chat.Button{{Label: backButtonLabel, Action: action}}
}

// MainMenu is the initial and universal-reset render.
func MainMenu() chat.Render {
	return chat.Render{
		Text: mainMenuText,
		Buttons: [][]chat.Button{
			{{Label: "🔍 Search by keyword", Action: chat.ActionIDKeywordStart}},
			{{Label: "🎭 Search by genre & year", Action: chat.ActionIDGenreStart}},
			{{Label: "🏆 Top queries", Action: chat.ActionIDTopQueries}},
		},
	}
}

func KeywordPrompt() chat.Render {
	return chat.Render{
		Text:    keywordMenuText,
		Buttons: [][]chat.Button{backRow(chat.ActionIDBackToMainMenu)},
	}
}

func GenrePrompt(genres []film.Genre) chat.Render {
	return chat.Render{
		Text:    fmt.Sprintf("%s\n\n%s\n\nSend me one.", genreMenuHeader, formatGenres(genres)),
		Buttons: [][]chat.Button{backRow(chat.ActionIDBackToMainMenu)},
	}
}

// GenreNotFound re-prompts after an unrecognized genre, repeating the full
// genre list.
func GenreNotFound(genre string, genres []film.Genre) chat.Render {
	return chat.Render{
		Text: fmt.Sprintf("Genre '%s' not found.\n\nAvailable genres:\n%s\n\nSend me one.",
			genre, formatGenres(genres)),
		Buttons: [][]chat.Button{backRow(chat.ActionIDBackToMainMenu)},
	}
}

func YearPrompt(genre string, years []film.YearCount) chat.Render {
	return chat.Render{
		Text: fmt.Sprintf("Genre '%s' found!\n\nPossible release years:\n%s\n\nPlease send one of these years.",
			genre, formatYears(years)),
		Buttons: [][]chat.Button{backRow(chat.ActionIDYearBackToGenre)},
	}
}

// YearNotFound re-prompts after a year with no films, repeating the genre's
// available years. The raw user input is echoed back, not the parsed value.
func YearNotFound(input, genre string, years []film.YearCount) chat.Render {
	return chat.Render{
		Text: fmt.Sprintf("Year '%s' not found for genre '%s'.\n\nAvailable years:\n%s\n\nPlease send one.",
			input, genre, formatYears(years)),
		Buttons: [][]chat.Button{backRow(chat.ActionIDYearBackToGenre)},
	}
}

// ResultsPage renders one page of a search result set: a header with the
// total and page position, the films of the page, navigation buttons for the
// pages that exist, and a back button to the originating prompt.
func ResultsPage(films []film.Film, page int, back chat.ActionID) chat.Render {
	pager := search.NewPager(len(films), page)
	start, end := pager.Bounds()

	text := fmt.Sprintf("Total found: %d\nPage %d of %d\n\n%s",
		pager.Total(), pager.Page()+1, pager.TotalPages(), formatFilms(films[start:end]))

	var buttons [][]chat.Button
	var nav []chat.Button
	if pager.HasPrev() {
		nav = append(nav, chat.Button{Label: "◀️", Action: chat.ActionIDSearchPrev})
	}
	if pager.HasNext() {
		nav = append(nav, chat.Button{Label: "▶️", Action: chat.ActionIDSearchNext})
	}
	if len(nav) > 0 {
		buttons = append(buttons, nav)
	}
	buttons = append(buttons, backRow(back))

	return chat.Render{Text: text, Buttons: buttons}
}

func TopQueries(rows []telemetry.QueryCount) chat.Render {
	var sb strings.Builder
	sb.WriteString("🏆 *Top Queries*\n\n")
	if len(rows) == 0 {
		sb.WriteString("No data")
	} else {
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = fmt.Sprintf("%s - used %d times", titleCaser.String(row.Value), row.Count)
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}

	return chat.Render{
		Text:    sb.String(),
		Buttons: [][]chat.Button{backRow(chat.ActionIDBackToMainMenu)},
	}
}

func formatGenres(genres []film.Genre) string {
	parts := make([]string, len(genres))
	for i, g := range genres {
		parts[i] = fmt.Sprintf("%s (%d)", g.Name, g.FilmCount)
	}
	return strings.Join(parts, ", ")
}

func formatYears(years []film.YearCount) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprintf("%d(%d)", y.Year, y.FilmCount)
	}
	return strings.Join(parts, ", ")
}

func formatFilms(films []film.Film) string {
	var sb strings.Builder
	for _, f := range films {
		sb.WriteString(fmt.Sprintf("*%s* (%s)\n📅 %d  ⏳ %d min\n📖 %s\n============================\n",
			f.Title, f.Rating.AgeLabel(), f.ReleaseYear, f.Length, truncate(f.Description, synopsisLimit)))
	}
	return sb.String()
}

// truncate cuts at limit characters, not bytes, so a multibyte rune never
// gets split into invalid UTF-8.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
