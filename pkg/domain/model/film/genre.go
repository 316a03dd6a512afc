package film

import (
	"strings"
)

// Genre is a catalog category with its film count, used for listing and
// validation only.
type Genre struct {
	Name      string
	FilmCount int
}

// YearCount is the number of films a genre has in a release year.
type YearCount struct {
	Year      int
	FilmCount int
}

// NormalizeGenre converts free-form user input into the catalog's genre
// spelling (upper case, trimmed).
func NormalizeGenre(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
