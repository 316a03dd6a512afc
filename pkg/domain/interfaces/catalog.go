package interfaces

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
)

// CatalogClient reads the film catalog. Implementations return an error on
// source faults; the caller decides whether to surface or degrade it. The
// state machine treats a fault exactly like an empty result.
type CatalogClient interface {
	SearchByKeyword(ctx context.Context, keyword string) ([]film.Film, error)
	ListGenres(ctx context.Context) ([]film.Genre, error)
	YearsForGenre(ctx context.Context, genre string) ([]film.YearCount, error)
	SearchByGenreAndYear(ctx context.Context, genre string, year int) ([]film.Film, error)
}
