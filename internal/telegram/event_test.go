package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUpdate_Text(t *testing.T) {
	ev, ok := FromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7,
		From:      &tgbotapi.User{ID: 100},
		Chat:      &tgbotapi.Chat{ID: 100},
		Text:      "інститут",
	}})

	require.True(t, ok)
	assert.Equal(t, EventText, ev.Kind)
	assert.Equal(t, int64(100), ev.SenderID)
	assert.Equal(t, int64(100), ev.ChatID)
	assert.Equal(t, "інститут", ev.Text)
}

func TestFromUpdate_PhotoPicksLargestSize(t *testing.T) {
	ev, ok := FromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 100},
		Chat:    &tgbotapi.Chat{ID: 100},
		Caption: "9A",
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90},
			{FileID: "large", Width: 800},
		},
	}})

	require.True(t, ok)
	assert.Equal(t, EventPhoto, ev.Kind)
	assert.Equal(t, "large", ev.PhotoFileID)
	assert.Equal(t, "9A", ev.Caption)
}

func TestFromUpdate_Callback(t *testing.T) {
	ev, ok := FromUpdate(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		From: &tgbotapi.User{ID: 1},
		Data: "approve_9A",
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: 1},
		},
	}})

	require.True(t, ok)
	assert.Equal(t, EventCallback, ev.Kind)
	assert.Equal(t, "approve_9A", ev.CallbackData)
	assert.Equal(t, int64(1), ev.CallbackChatID)
	assert.Equal(t, 42, ev.CallbackMessageID)
}

func TestFromUpdate_IgnoresUnsupported(t *testing.T) {
	_, ok := FromUpdate(tgbotapi.Update{})
	assert.False(t, ok)

	// sticker-only message: no text, no photo
	_, ok = FromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 100},
		Chat: &tgbotapi.Chat{ID: 100},
	}})
	assert.False(t, ok)
}
