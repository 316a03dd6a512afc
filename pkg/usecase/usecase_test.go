package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/filmdesk/filmdesk/pkg/domain/mock"
	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
	"github.com/filmdesk/filmdesk/pkg/repository"
	slackService "github.com/filmdesk/filmdesk/pkg/service/slack"
	"github.com/filmdesk/filmdesk/pkg/usecase"
	"github.com/m-mizutani/gt"
	slack_sdk "github.com/slack-go/slack"
)

var testUser = chat.User{ID: "U-USER001", Name: "U-USER001"}

const testChannel = "C-CHAN001"

func newTestUseCases(t *testing.T, catalog *mock.CatalogClientMock) (*usecase.UseCases, *mock.SlackClientMock, *repository.Memory) {
	t.Helper()

	slackMock := &mock.SlackClientMock{}
	svc, err := slackService.New(slackMock)
	gt.NoError(t, err)

	repo := repository.NewMemory()
	uc := usecase.New(
		usecase.WithSlackService(svc),
		usecase.WithCatalog(catalog),
		usecase.WithTelemetry(repo),
	)
	return uc, slackMock, repo
}

// renderOf decodes the message text and raw block JSON of one recorded call.
func renderOf(t *testing.T, call mock.MsgCall) (string, string) {
	t.Helper()
	_, values, err := slack_sdk.UnsafeApplyMsgOptions("xoxb-test", call.ChannelID, "https://slack.com/api/", call.Options...)
	gt.NoError(t, err)
	return values.Get("text"), values.Get("blocks")
}

func manyFilms(n int) []film.Film {
	out := make([]film.Film, n)
	for i := range out {
		out[i] = film.Film{ID: i + 1, Title: "FILM", ReleaseYear: 2006, Rating: "PG", Length: 90}
	}
	return out
}

func sakilaCatalog() *mock.CatalogClientMock {
	return &mock.CatalogClientMock{
		ListGenresFunc: func(ctx context.Context) ([]film.Genre, error) {
			return []film.Genre{
				{Name: "COMEDY", FilmCount: 12},
				{Name: "DRAMA", FilmCount: 20},
			}, nil
		},
		YearsForGenreFunc: func(ctx context.Context, genre string) ([]film.YearCount, error) {
			if genre != "COMEDY" {
				return nil, nil
			}
			return []film.YearCount{
				{Year: 2005, FilmCount: 3},
				{Year: 2006, FilmCount: 9},
			}, nil
		},
		SearchByGenreAndYearFunc: func(ctx context.Context, genre string, year int) ([]film.Film, error) {
			if genre == "COMEDY" && year == 2006 {
				return manyFilms(12), nil
			}
			return nil, nil
		},
	}
}

func TestStartCreatesAnchorAndRendersEditIt(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.A(t, slackMock.PostMessageCalls()).Length(1)

	text, _ := renderOf(t, slackMock.PostMessageCalls()[0])
	gt.S(t, text).Contains("S A K I L A")

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDBackToMainMenu))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))

	// Every later render edits the one anchor message created by start.
	updates := slackMock.UpdateMessageCalls()
	gt.A(t, updates).Length(3)
	anchor := "1700000000.000001"
	for _, call := range updates {
		gt.Equal(t, call.Timestamp, anchor)
		gt.Equal(t, call.ChannelID, testChannel)
	}
	gt.A(t, slackMock.PostMessageCalls()).Length(1)
}

func TestRestartCreatesNewAnchor(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.A(t, slackMock.PostMessageCalls()).Length(2)

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))
	updates := slackMock.UpdateMessageCalls()
	gt.A(t, updates).Length(1)
	gt.Equal(t, updates[0].Timestamp, "1700000000.000002")
}

func TestGenreYearScenario(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, repo := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))
	text, _ := renderOf(t, slackMock.UpdateMessageCalls()[0])
	gt.S(t, text).Contains("COMEDY (12), DRAMA (20)")

	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "comedy"))
	text, _ = renderOf(t, slackMock.UpdateMessageCalls()[1])
	gt.S(t, text).Contains("Genre 'COMEDY' found!")
	gt.S(t, text).Contains("2005(3), 2006(9)")

	// The user's own message was consumed.
	deletes := slackMock.DeleteMessageCalls()
	gt.A(t, deletes).Length(1)
	gt.Equal(t, deletes[0].Timestamp, "1700000001.000100")

	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000200", "2006"))
	text, blocks := renderOf(t, slackMock.UpdateMessageCalls()[2])
	gt.S(t, text).Contains("Total found: 12")
	gt.S(t, text).Contains("Page 1 of 2")
	gt.S(t, blocks).Contains(chat.ActionIDGenreResultBack.String())

	gt.Equal(t, repo.Values(), []string{"comedy,2006"})
	gt.Equal(t, repo.Kinds(), []telemetry.Kind{telemetry.KindGenreYear})
}

func TestKeywordPagingScenario(t *testing.T) {
	ctx := context.Background()
	catalog := sakilaCatalog()
	catalog.SearchByKeywordFunc = func(ctx context.Context, keyword string) ([]film.Film, error) {
		return manyFilms(25), nil
	}
	uc, slackMock, repo := newTestUseCases(t, catalog)

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "love"))

	updates := slackMock.UpdateMessageCalls()
	text, blocks := renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Page 1 of 3")
	gt.S(t, blocks).Contains("search_next")
	gt.False(t, strings.Contains(blocks, "search_prev"))

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDSearchNext))
	updates = slackMock.UpdateMessageCalls()
	text, blocks = renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Page 2 of 3")
	gt.S(t, blocks).Contains("search_next")
	gt.S(t, blocks).Contains("search_prev")

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDSearchNext))
	updates = slackMock.UpdateMessageCalls()
	text, blocks = renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Page 3 of 3")
	gt.False(t, strings.Contains(blocks, "search_next"))
	gt.S(t, blocks).Contains("search_prev")

	// A stray "next" on the last page stays on the last page.
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDSearchNext))
	updates = slackMock.UpdateMessageCalls()
	text, _ = renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Page 3 of 3")

	gt.Equal(t, repo.Values(), []string{"love"})
}

func TestUnknownGenreRepromptsAndOverwrites(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))

	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "FOOBAR"))
	updates := slackMock.UpdateMessageCalls()
	text, _ := renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Genre 'FOOBAR' not found.")
	gt.S(t, text).Contains("COMEDY (12), DRAMA (20)")

	// Still in the genre prompt, so the next input is another genre try; an
	// earlier failure leaves nothing behind.
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000200", "nope"))
	updates = slackMock.UpdateMessageCalls()
	text, _ = renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Genre 'NOPE' not found.")

	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000300", "comedy"))
	updates = slackMock.UpdateMessageCalls()
	text, _ = renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Genre 'COMEDY' found!")
}

func TestYearRepromptOnNoMatch(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, repo := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "comedy"))

	// Unparsable input falls back to year 0, which matches nothing.
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000200", "banana"))
	updates := slackMock.UpdateMessageCalls()
	text, _ := renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Year 'banana' not found for genre 'COMEDY'.")
	gt.S(t, text).Contains("2005(3), 2006(9)")
	gt.Equal(t, repo.Len(), 0)

	// The prompt is still live; a valid year completes the search.
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000300", "2006"))
	updates = slackMock.UpdateMessageCalls()
	text, _ = renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Total found: 12")
	gt.Equal(t, repo.Values(), []string{"comedy,2006"})
}

func TestBackToMainMenuIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	menuText, _ := renderOf(t, slackMock.PostMessageCalls()[0])

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "comedy"))

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDBackToMainMenu))
	updates := slackMock.UpdateMessageCalls()
	backText, _ := renderOf(t, updates[len(updates)-1])
	gt.Equal(t, backText, menuText)

	// Session fields were cleared: pagination presses do nothing now.
	before := len(slackMock.UpdateMessageCalls())
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDSearchNext))
	gt.Equal(t, len(slackMock.UpdateMessageCalls()), before)
}

func TestTextWithoutSessionIsIgnored(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, repo := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "love"))

	gt.A(t, slackMock.PostMessageCalls()).Length(0)
	gt.A(t, slackMock.UpdateMessageCalls()).Length(0)
	gt.A(t, slackMock.DeleteMessageCalls()).Length(0)
	gt.Equal(t, repo.Len(), 0)
}

func TestStartWordOpensConversation(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "Start"))

	posts := slackMock.PostMessageCalls()
	gt.A(t, posts).Length(1)
	text, _ := renderOf(t, posts[0])
	gt.S(t, text).Contains("S A K I L A")

	// The typed "start" was consumed like any other input.
	deletes := slackMock.DeleteMessageCalls()
	gt.A(t, deletes).Length(1)
	gt.Equal(t, deletes[0].Timestamp, "1700000001.000100")
}

func TestButtonWithoutSessionIsIgnored(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))
	gt.A(t, slackMock.UpdateMessageCalls()).Length(0)
}

func TestButtonFromOtherChannelIgnored(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))

	// The anchor lives in testChannel; a press arriving from elsewhere is a
	// leftover message from an earlier conversation.
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, "C-OTHER", chat.ActionIDGenreStart))
	gt.A(t, slackMock.UpdateMessageCalls()).Length(0)

	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDGenreStart))
	gt.A(t, slackMock.UpdateMessageCalls()).Length(1)
}

func TestConcurrentTextEventsSerialize(t *testing.T) {
	ctx := context.Background()
	catalog := sakilaCatalog()
	catalog.SearchByKeywordFunc = func(ctx context.Context, keyword string) ([]film.Film, error) {
		return manyFilms(3), nil
	}
	uc, slackMock, repo := newTestUseCases(t, catalog)

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))
	updatesBefore := len(slackMock.UpdateMessageCalls())

	// Slack retries slow deliveries, so the same user's events can arrive on
	// overlapping goroutines. Processing is serialized per user: exactly one
	// of these finds the keyword prompt and runs the search, the rest land on
	// the result page where free text is consumed and dropped.
	const n = 8
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- uc.HandleText(ctx, testUser, testChannel, "1700000002.000001", "love")
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		gt.NoError(t, err)
	}

	gt.Equal(t, repo.Len(), 1)
	gt.A(t, slackMock.DeleteMessageCalls()).Length(n)
	gt.A(t, slackMock.UpdateMessageCalls()).Length(updatesBefore + 1)
}

func TestCatalogFaultDegradesToEmptyResult(t *testing.T) {
	ctx := context.Background()
	catalog := sakilaCatalog()
	catalog.SearchByKeywordFunc = func(ctx context.Context, keyword string) ([]film.Film, error) {
		return nil, context.DeadlineExceeded
	}
	uc, slackMock, repo := newTestUseCases(t, catalog)

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "love"))

	updates := slackMock.UpdateMessageCalls()
	text, _ := renderOf(t, updates[len(updates)-1])
	gt.S(t, text).Contains("Total found: 0")

	// A degraded search is not a successful one; nothing is recorded.
	gt.Equal(t, repo.Len(), 0)
}

func TestEmptyKeywordResultNotRecorded(t *testing.T) {
	ctx := context.Background()
	uc, _, repo := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "zzzzz"))

	gt.Equal(t, repo.Len(), 0)
}

func TestTopQueriesAction(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, repo := newTestUseCases(t, sakilaCatalog())

	gt.NoError(t, repo.Record(ctx, telemetry.KindKeyword, "love"))
	gt.NoError(t, repo.Record(ctx, telemetry.KindKeyword, "love"))
	gt.NoError(t, repo.Record(ctx, telemetry.KindGenreYear, "COMEDY,2006"))

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDTopQueries))

	text, _ := renderOf(t, slackMock.UpdateMessageCalls()[0])
	gt.S(t, text).Contains("Top Queries")
	gt.S(t, text).Contains("Love - used 2 times")
	gt.S(t, text).Contains("Comedy,2006 - used 1 times")
}

func TestAnchorGoneDropsSession(t *testing.T) {
	ctx := context.Background()
	uc, slackMock, _ := newTestUseCases(t, sakilaCatalog())
	slackMock.UpdateMessageContextFunc = func(ctx context.Context, channelID, timestamp string, options ...slack_sdk.MsgOption) (string, string, string, error) {
		return "", "", "", context.Canceled
	}

	gt.NoError(t, uc.HandleStart(ctx, testUser, testChannel))
	gt.NoError(t, uc.HandleBlockAction(ctx, testUser, testChannel, chat.ActionIDKeywordStart))

	// The failed edit dropped the session: later events find no conversation.
	gt.NoError(t, uc.HandleText(ctx, testUser, testChannel, "1700000001.000100", "love"))
	gt.A(t, slackMock.DeleteMessageCalls()).Length(0)
}
