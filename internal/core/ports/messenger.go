package ports

import (
	"context"
)

// Button is one inline keyboard button attached to an outgoing message.
// Data carries the opaque callback payload echoed back when pressed.
type Button struct {
	Label string
	Data  string
}

// Messenger sends chat messages to a recipient, optionally with an
// inline keyboard. Rows of buttons render as keyboard rows.
type Messenger interface {
	SendMessage(ctx context.Context, chatID string, text string, buttons [][]Button) error
}
