// Package telegram adapts the Bot API transport: outbound sends used by the
// dispatcher and the bot handlers, plus translation of inbound updates into
// transport-neutral events.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/config"
	"github.com/TheTimMir/dnlit-quest-bot/internal/dispatch"
)

// Callback payload prefixes rendered on the review keyboard.
const (
	CallbackApprovePrefix = "approve_"
	CallbackRejectPrefix  = "reject_"
)

// Client wraps the Bot API connection. All messages go out with HTML parse
// mode, matching the quest script markup.
type Client struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	logger      *zap.Logger
}

// New authorizes against the Bot API.
func New(cfg config.BotConfig, logger *zap.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}
	api.Debug = cfg.Debug

	logger.Info("authorized on telegram", zap.String("account", api.Self.UserName))
	return &Client{api: api, pollTimeout: cfg.PollTimeoutSec, logger: logger}, nil
}

// Updates starts long polling and returns the translated event stream.
func (c *Client) Updates() <-chan Event {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.pollTimeout

	events := make(chan Event)
	go func() {
		defer close(events)
		for update := range c.api.GetUpdatesChan(u) {
			if ev, ok := FromUpdate(update); ok {
				events <- ev
			}
		}
	}()
	return events
}

// Stop halts long polling; the Updates channel closes afterwards.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}

// SendText delivers a plain message.
func (c *Client) SendText(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := c.api.Send(msg)
	return err
}

// SendPhoto delivers a photo by file id or local path.
func (c *Client) SendPhoto(_ context.Context, chatID int64, photo dispatch.Photo) error {
	cfg := tgbotapi.NewPhoto(chatID, photoFile(photo))
	cfg.Caption = photo.Caption
	cfg.ParseMode = tgbotapi.ModeHTML
	_, err := c.api.Send(cfg)
	return err
}

// SendLocation delivers a map point.
func (c *Client) SendLocation(_ context.Context, chatID int64, latitude, longitude float64) error {
	_, err := c.api.Send(tgbotapi.NewLocation(chatID, latitude, longitude))
	return err
}

// SendReviewRequest forwards a submitted photo with inline approve/reject
// buttons tagged with the submitting team's code.
func (c *Client) SendReviewRequest(_ context.Context, chatID int64, photo dispatch.Photo, teamCode string) error {
	cfg := tgbotapi.NewPhoto(chatID, photoFile(photo))
	cfg.Caption = photo.Caption
	cfg.ParseMode = tgbotapi.ModeHTML
	cfg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", CallbackApprovePrefix+teamCode),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", CallbackRejectPrefix+teamCode),
		),
	)
	_, err := c.api.Send(cfg)
	return err
}

// EditCaption rewrites the caption of an already-sent message.
func (c *Client) EditCaption(_ context.Context, chatID int64, messageID int, caption string) error {
	_, err := c.api.Send(tgbotapi.NewEditMessageCaption(chatID, messageID, caption))
	return err
}

// DisplayName resolves a member id to "first last"; the raw error comes back
// when the profile cannot be fetched.
func (c *Client) DisplayName(_ context.Context, memberID int64) (string, error) {
	chat, err := c.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: memberID},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(chat.FirstName + " " + chat.LastName), nil
}

func photoFile(photo dispatch.Photo) tgbotapi.RequestFileData {
	if photo.FileID != "" {
		return tgbotapi.FileID(photo.FileID)
	}
	return tgbotapi.FilePath(photo.Path)
}
