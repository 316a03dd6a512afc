package usecase

import (
	"context"
	"sync"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
	"github.com/filmdesk/filmdesk/pkg/domain/model/session"
	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
	slackService "github.com/filmdesk/filmdesk/pkg/service/slack"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
)

// topQueriesLimit caps the "top queries" listing.
const topQueriesLimit = 10

// UseCases drives one conversation state machine per user. The transport
// dispatches every delivery on its own goroutine and Slack retries slow
// deliveries, so events for one user can overlap; each handler takes the
// user's lock for the whole event cycle to keep session mutation serial.
type UseCases struct {
	slackSvc  *slackService.Service
	catalog   interfaces.CatalogClient
	telemetry interfaces.TelemetryRepository

	sessionMu sync.Mutex
	sessions  map[string]*session.Session
	userMu    map[string]*sync.Mutex
}

var _ interfaces.ChatEventUsecases = &UseCases{}
var _ interfaces.ChatInteractionUsecases = &UseCases{}

type Option func(*UseCases)

func WithSlackService(svc *slackService.Service) Option {
	return func(u *UseCases) {
		u.slackSvc = svc
	}
}

func WithCatalog(catalog interfaces.CatalogClient) Option {
	return func(u *UseCases) {
		u.catalog = catalog
	}
}

func WithTelemetry(repo interfaces.TelemetryRepository) Option {
	return func(u *UseCases) {
		u.telemetry = repo
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		sessions: make(map[string]*session.Session),
		userMu:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// lockUser serializes event processing for one user. The per-user mutex
// outlives the session so a drop-and-restart cannot race itself.
func (uc *UseCases) lockUser(userID string) func() {
	uc.sessionMu.Lock()
	mu, ok := uc.userMu[userID]
	if !ok {
		mu = &sync.Mutex{}
		uc.userMu[userID] = mu
	}
	uc.sessionMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (uc *UseCases) lookupSession(userID string) *session.Session {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()
	return uc.sessions[userID]
}

func (uc *UseCases) openSession(userID, channelID string) *session.Session {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()

	s, ok := uc.sessions[userID]
	if !ok {
		s = session.New(userID, channelID)
		uc.sessions[userID] = s
	}
	s.ChannelID = channelID
	return s
}

func (uc *UseCases) dropSession(userID string) {
	uc.sessionMu.Lock()
	defer uc.sessionMu.Unlock()
	delete(uc.sessions, userID)
}

// Catalog access helpers. Every source fault degrades to an empty result:
// the user sees "nothing found", never an error.

func (uc *UseCases) searchByKeyword(ctx context.Context, keyword string) []film.Film {
	films, err := uc.catalog.SearchByKeyword(ctx, keyword)
	if err != nil {
		logging.From(ctx).Warn("catalog fault on keyword search, treating as empty",
			"keyword", keyword, logging.ErrAttr(err))
		return nil
	}
	return films
}

func (uc *UseCases) listGenres(ctx context.Context) []film.Genre {
	genres, err := uc.catalog.ListGenres(ctx)
	if err != nil {
		logging.From(ctx).Warn("catalog fault on genre listing, treating as empty", logging.ErrAttr(err))
		return nil
	}
	return genres
}

func (uc *UseCases) yearsForGenre(ctx context.Context, genre string) []film.YearCount {
	years, err := uc.catalog.YearsForGenre(ctx, genre)
	if err != nil {
		logging.From(ctx).Warn("catalog fault on year listing, treating as empty",
			"genre", genre, logging.ErrAttr(err))
		return nil
	}
	return years
}

func (uc *UseCases) searchByGenreAndYear(ctx context.Context, genre string, year int) []film.Film {
	films, err := uc.catalog.SearchByGenreAndYear(ctx, genre, year)
	if err != nil {
		logging.From(ctx).Warn("catalog fault on genre+year search, treating as empty",
			"genre", genre, "year", year, logging.ErrAttr(err))
		return nil
	}
	return films
}

// recordSearch appends a telemetry record. Best effort: a failed write never
// reaches the user.
func (uc *UseCases) recordSearch(ctx context.Context, kind telemetry.Kind, value string) {
	if err := uc.telemetry.Record(ctx, kind, value); err != nil {
		logging.From(ctx).Warn("failed to record search telemetry",
			"kind", kind, "value", value, logging.ErrAttr(err))
	}
}

func (uc *UseCases) topQueries(ctx context.Context) []telemetry.QueryCount {
	rows, err := uc.telemetry.TopQueries(ctx, topQueriesLimit)
	if err != nil {
		logging.From(ctx).Warn("telemetry fault on top queries, treating as empty", logging.ErrAttr(err))
		return nil
	}
	return rows
}
