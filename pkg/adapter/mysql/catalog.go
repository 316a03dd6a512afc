package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/errs"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
	"github.com/m-mizutani/goerr/v2"

	_ "github.com/go-sql-driver/mysql"
)

// queryTimeout bounds every catalog call. Expiry degrades to an empty result
// at the usecase layer, same as any other source fault.
const queryTimeout = 5 * time.Second

// Catalog reads the Sakila schema over MySQL.
type Catalog struct {
	db *sql.DB
}

var _ interfaces.CatalogClient = &Catalog{}

func New(dsn string) (*Catalog, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open catalog database", goerr.T(errs.TagCatalog))
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Catalog{db: db}, nil
}

func (x *Catalog) Close() error {
	return x.db.Close()
}

func (x *Catalog) SearchByKeyword(ctx context.Context, keyword string) ([]film.Film, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const query = `
		SELECT f.film_id, f.title, f.release_year, f.description, f.rating, f.length
		FROM film f
		WHERE f.title LIKE ? OR f.description LIKE ?
		ORDER BY f.title`

	pattern := "%" + keyword + "%"
	rows, err := x.db.QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search films by keyword",
			goerr.T(errs.TagCatalog), goerr.V("keyword", keyword))
	}
	defer rows.Close()

	return scanFilms(rows)
}

func (x *Catalog) ListGenres(ctx context.Context) ([]film.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const query = `
		SELECT c.name, COUNT(f.film_id) AS film_count
		FROM category c
		JOIN film_category fc ON c.category_id = fc.category_id
		JOIN film f ON fc.film_id = f.film_id
		GROUP BY c.name
		ORDER BY c.name`

	rows, err := x.db.QueryContext(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list genres", goerr.T(errs.TagCatalog))
	}
	defer rows.Close()

	var genres []film.Genre
	for rows.Next() {
		var g film.Genre
		if err := rows.Scan(&g.Name, &g.FilmCount); err != nil {
			return nil, goerr.Wrap(err, "failed to scan genre row", goerr.T(errs.TagCatalog))
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate genre rows", goerr.T(errs.TagCatalog))
	}

	return genres, nil
}

func (x *Catalog) YearsForGenre(ctx context.Context, genre string) ([]film.YearCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const query = `
		SELECT f.release_year, COUNT(f.film_id) AS film_count
		FROM film f
		JOIN film_category fc ON f.film_id = fc.film_id
		JOIN category c ON fc.category_id = c.category_id
		WHERE c.name = ?
		GROUP BY f.release_year
		ORDER BY f.release_year`

	rows, err := x.db.QueryContext(ctx, query, genre)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list years for genre",
			goerr.T(errs.TagCatalog), goerr.V("genre", genre))
	}
	defer rows.Close()

	var years []film.YearCount
	for rows.Next() {
		var y film.YearCount
		if err := rows.Scan(&y.Year, &y.FilmCount); err != nil {
			return nil, goerr.Wrap(err, "failed to scan year row", goerr.T(errs.TagCatalog))
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate year rows", goerr.T(errs.TagCatalog))
	}

	return years, nil
}

func (x *Catalog) SearchByGenreAndYear(ctx context.Context, genre string, year int) ([]film.Film, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const query = `
		SELECT f.film_id, f.title, f.release_year, f.description, f.rating, f.length
		FROM film f
		JOIN film_category fc ON f.film_id = fc.film_id
		JOIN category c ON fc.category_id = c.category_id
		WHERE c.name = ? AND f.release_year = ?
		ORDER BY f.title`

	rows, err := x.db.QueryContext(ctx, query, genre, year)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search films by genre and year",
			goerr.T(errs.TagCatalog), goerr.V("genre", genre), goerr.V("year", year))
	}
	defer rows.Close()

	return scanFilms(rows)
}

func scanFilms(rows *sql.Rows) ([]film.Film, error) {
	var films []film.Film
	for rows.Next() {
		var f film.Film
		var description, rating sql.NullString
		var length sql.NullInt64

		if err := rows.Scan(&f.ID, &f.Title, &f.ReleaseYear, &description, &rating, &length); err != nil {
			return nil, goerr.Wrap(err, "failed to scan film row", goerr.T(errs.TagCatalog))
		}
		f.Description = description.String
		f.Rating = film.Rating(rating.String)
		f.Length = int(length.Int64)
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate film rows", goerr.T(errs.TagCatalog))
	}

	return films, nil
}
