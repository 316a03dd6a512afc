package interfaces

import (
	"context"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
)

// ChatEventUsecases receives conversational events from the transport.
type ChatEventUsecases interface {
	// HandleStart begins (or restarts) a conversation with a fresh anchor
	// message in the given channel.
	HandleStart(ctx context.Context, user chat.User, channelID string) error

	// HandleText processes free text typed by a user with a live session.
	// messageTS identifies the user's own message so it can be consumed.
	HandleText(ctx context.Context, user chat.User, channelID, messageTS, text string) error
}

// ChatInteractionUsecases receives button presses.
type ChatInteractionUsecases interface {
	HandleBlockAction(ctx context.Context, user chat.User, channelID string, action chat.ActionID) error
}
