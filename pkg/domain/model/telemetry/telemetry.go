package telemetry

import "fmt"

// Kind tags what produced a search record.
type Kind string

func (k Kind) String() string {
	return string(k)
}

const (
	KindKeyword   Kind = "keyword"
	KindGenreYear Kind = "genre_year"
)

// GenreYearValue encodes a genre+year search as the stored telemetry value.
func GenreYearValue(genre string, year int) string {
	return fmt.Sprintf("%s,%d", genre, year)
}

// QueryCount is one row of the "top queries" aggregation.
type QueryCount struct {
	Value string
	Count int
}
