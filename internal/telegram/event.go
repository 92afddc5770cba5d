package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// EventKind classifies an inbound update.
type EventKind int

const (
	EventText EventKind = iota
	EventPhoto
	EventCallback
)

// String names the kind for logs and metrics.
func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventPhoto:
		return "photo"
	case EventCallback:
		return "callback"
	}
	return "unknown"
}

// Event is the transport-neutral form of one inbound update.
type Event struct {
	Kind     EventKind
	SenderID int64
	ChatID   int64

	// text messages
	Text string

	// photo messages
	PhotoFileID string
	Caption     string

	// callback interactions: Data plus the message carrying the keyboard,
	// whose caption gets edited after review
	CallbackData      string
	CallbackChatID    int64
	CallbackMessageID int
}

// FromUpdate translates a raw update. Updates the bot does not consume
// (edits, channel posts, non-photo attachments) are dropped.
func FromUpdate(update tgbotapi.Update) (Event, bool) {
	if query := update.CallbackQuery; query != nil {
		ev := Event{
			Kind:         EventCallback,
			SenderID:     query.From.ID,
			ChatID:       query.From.ID,
			CallbackData: query.Data,
		}
		if query.Message != nil {
			ev.CallbackChatID = query.Message.Chat.ID
			ev.CallbackMessageID = query.Message.MessageID
		}
		return ev, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return Event{}, false
	}

	if len(msg.Photo) > 0 {
		return Event{
			Kind:        EventPhoto,
			SenderID:    msg.From.ID,
			ChatID:      msg.Chat.ID,
			PhotoFileID: msg.Photo[len(msg.Photo)-1].FileID, // largest size last
			Caption:     msg.Caption,
		}, true
	}

	if msg.Text != "" {
		return Event{
			Kind:     EventText,
			SenderID: msg.From.ID,
			ChatID:   msg.Chat.ID,
			Text:     msg.Text,
		}, true
	}

	return Event{}, false
}
