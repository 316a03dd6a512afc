// Package mock provides hand-rolled test doubles for the adapter interfaces.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/filmdesk/filmdesk/pkg/domain/model/film"
	"github.com/slack-go/slack"
)

// SlackClientMock implements interfaces.SlackClient with settable behavior
// and call recording.
type SlackClientMock struct {
	mu sync.Mutex

	AuthTestFunc             func() (*slack.AuthTestResponse, error)
	PostMessageContextFunc   func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContextFunc func(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	DeleteMessageContextFunc func(ctx context.Context, channelID, timestamp string) (string, string, error)

	postCalls   []MsgCall
	updateCalls []MsgCall
	deleteCalls []MsgCall
}

// MsgCall records one message API invocation.
type MsgCall struct {
	ChannelID string
	Timestamp string
	Options   []slack.MsgOption
}

var _ interfaces.SlackClient = &SlackClientMock{}

func (x *SlackClientMock) AuthTest() (*slack.AuthTestResponse, error) {
	if x.AuthTestFunc != nil {
		return x.AuthTestFunc()
	}
	return &slack.AuthTestResponse{UserID: "U-BOT", BotID: "B-BOT"}, nil
}

func (x *SlackClientMock) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	x.mu.Lock()
	x.postCalls = append(x.postCalls, MsgCall{ChannelID: channelID, Options: options})
	n := len(x.postCalls)
	x.mu.Unlock()

	if x.PostMessageContextFunc != nil {
		return x.PostMessageContextFunc(ctx, channelID, options...)
	}
	return channelID, timestampFor(n), nil
}

func (x *SlackClientMock) UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error) {
	x.mu.Lock()
	x.updateCalls = append(x.updateCalls, MsgCall{ChannelID: channelID, Timestamp: timestamp, Options: options})
	x.mu.Unlock()

	if x.UpdateMessageContextFunc != nil {
		return x.UpdateMessageContextFunc(ctx, channelID, timestamp, options...)
	}
	return channelID, timestamp, "", nil
}

func (x *SlackClientMock) DeleteMessageContext(ctx context.Context, channelID, timestamp string) (string, string, error) {
	x.mu.Lock()
	x.deleteCalls = append(x.deleteCalls, MsgCall{ChannelID: channelID, Timestamp: timestamp})
	x.mu.Unlock()

	if x.DeleteMessageContextFunc != nil {
		return x.DeleteMessageContextFunc(ctx, channelID, timestamp)
	}
	return channelID, timestamp, nil
}

func (x *SlackClientMock) PostMessageCalls() []MsgCall {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]MsgCall(nil), x.postCalls...)
}

func (x *SlackClientMock) UpdateMessageCalls() []MsgCall {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]MsgCall(nil), x.updateCalls...)
}

func (x *SlackClientMock) DeleteMessageCalls() []MsgCall {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]MsgCall(nil), x.deleteCalls...)
}

func timestampFor(n int) string {
	return fmt.Sprintf("1700000000.%06d", n)
}

// CatalogClientMock implements interfaces.CatalogClient.
type CatalogClientMock struct {
	SearchByKeywordFunc      func(ctx context.Context, keyword string) ([]film.Film, error)
	ListGenresFunc           func(ctx context.Context) ([]film.Genre, error)
	YearsForGenreFunc        func(ctx context.Context, genre string) ([]film.YearCount, error)
	SearchByGenreAndYearFunc func(ctx context.Context, genre string, year int) ([]film.Film, error)
}

var _ interfaces.CatalogClient = &CatalogClientMock{}

func (x *CatalogClientMock) SearchByKeyword(ctx context.Context, keyword string) ([]film.Film, error) {
	if x.SearchByKeywordFunc != nil {
		return x.SearchByKeywordFunc(ctx, keyword)
	}
	return nil, nil
}

func (x *CatalogClientMock) ListGenres(ctx context.Context) ([]film.Genre, error) {
	if x.ListGenresFunc != nil {
		return x.ListGenresFunc(ctx)
	}
	return nil, nil
}

func (x *CatalogClientMock) YearsForGenre(ctx context.Context, genre string) ([]film.YearCount, error) {
	if x.YearsForGenreFunc != nil {
		return x.YearsForGenreFunc(ctx, genre)
	}
	return nil, nil
}

func (x *CatalogClientMock) SearchByGenreAndYear(ctx context.Context, genre string, year int) ([]film.Film, error) {
	if x.SearchByGenreAndYearFunc != nil {
		return x.SearchByGenreAndYearFunc(ctx, genre, year)
	}
	return nil, nil
}

// ChatEventUsecasesMock implements interfaces.ChatEventUsecases with call
// recording.
type ChatEventUsecasesMock struct {
	mu sync.Mutex

	HandleStartFunc func(ctx context.Context, user chat.User, channelID string) error
	HandleTextFunc  func(ctx context.Context, user chat.User, channelID, messageTS, text string) error

	startCalls []StartCall
	textCalls  []TextCall
}

type StartCall struct {
	User      chat.User
	ChannelID string
}

type TextCall struct {
	User      chat.User
	ChannelID string
	MessageTS string
	Text      string
}

var _ interfaces.ChatEventUsecases = &ChatEventUsecasesMock{}

func (x *ChatEventUsecasesMock) HandleStart(ctx context.Context, user chat.User, channelID string) error {
	x.mu.Lock()
	x.startCalls = append(x.startCalls, StartCall{User: user, ChannelID: channelID})
	x.mu.Unlock()

	if x.HandleStartFunc != nil {
		return x.HandleStartFunc(ctx, user, channelID)
	}
	return nil
}

func (x *ChatEventUsecasesMock) HandleText(ctx context.Context, user chat.User, channelID, messageTS, text string) error {
	x.mu.Lock()
	x.textCalls = append(x.textCalls, TextCall{User: user, ChannelID: channelID, MessageTS: messageTS, Text: text})
	x.mu.Unlock()

	if x.HandleTextFunc != nil {
		return x.HandleTextFunc(ctx, user, channelID, messageTS, text)
	}
	return nil
}

func (x *ChatEventUsecasesMock) HandleStartCalls() []StartCall {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]StartCall(nil), x.startCalls...)
}

func (x *ChatEventUsecasesMock) HandleTextCalls() []TextCall {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]TextCall(nil), x.textCalls...)
}

// ChatInteractionUsecasesMock implements interfaces.ChatInteractionUsecases
// with call recording.
type ChatInteractionUsecasesMock struct {
	mu sync.Mutex

	HandleBlockActionFunc func(ctx context.Context, user chat.User, channelID string, action chat.ActionID) error

	actionCalls []ActionCall
}

type ActionCall struct {
	User      chat.User
	ChannelID string
	Action    chat.ActionID
}

var _ interfaces.ChatInteractionUsecases = &ChatInteractionUsecasesMock{}

func (x *ChatInteractionUsecasesMock) HandleBlockAction(ctx context.Context, user chat.User, channelID string, action chat.ActionID) error {
	x.mu.Lock()
	x.actionCalls = append(x.actionCalls, ActionCall{User: user, ChannelID: channelID, Action: action})
	x.mu.Unlock()

	if x.HandleBlockActionFunc != nil {
		return x.HandleBlockActionFunc(ctx, user, channelID, action)
	}
	return nil
}

func (x *ChatInteractionUsecasesMock) HandleBlockActionCalls() []ActionCall {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]ActionCall(nil), x.actionCalls...)
}
