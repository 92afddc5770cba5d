package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/dispatch"
	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
	"github.com/TheTimMir/dnlit-quest-bot/internal/quest"
	"github.com/TheTimMir/dnlit-quest-bot/internal/telegram"
)

// wordHandler reacts to one puzzle word: the narrative goes to the sender's
// whole team, so every teammate sees the next step at once.
func (e *Engine) wordHandler(word quest.WordTrigger) func(context.Context, telegram.Event) error {
	return func(ctx context.Context, ev telegram.Event) error {
		teamCode, ok := e.reg.TeamOf(ev.SenderID)
		e.logger.Info("puzzle word received",
			zap.String("word", word.Word),
			zap.Int64("sender", ev.SenderID),
			zap.String("team", teamCode))
		if !ok {
			return e.reply(ctx, ev, replyNotRegistered)
		}
		e.disp.TextToTeam(ctx, teamCode, word.Reply)
		return nil
	}
}

// handleHint answers the hint word with the riddle image, directly to the
// sender rather than the whole team.
func (e *Engine) handleHint(ctx context.Context, ev telegram.Event) error {
	teamCode, _ := e.reg.TeamOf(ev.SenderID)
	e.logger.Info("hint word received",
		zap.Int64("sender", ev.SenderID),
		zap.String("team", teamCode))
	return e.tr.SendPhoto(ctx, ev.ChatID, dispatch.Photo{
		Path:    e.script.Hint.Image,
		Caption: e.script.Hint.Caption,
	})
}

// handleCode reacts to the secret combination: the team gets the narrative
// and then the map coordinate of the next location.
func (e *Engine) handleCode(ctx context.Context, ev telegram.Event) error {
	teamCode, ok := e.reg.TeamOf(ev.SenderID)
	e.logger.Info("code combination received",
		zap.Int64("sender", ev.SenderID),
		zap.String("team", teamCode))
	if !ok {
		return e.reply(ctx, ev, replyNotRegistered)
	}
	e.disp.TextToTeam(ctx, teamCode, e.script.Code.Reply)
	loc := e.script.Code.Location
	e.disp.LocationToTeam(ctx, teamCode, loc.Latitude, loc.Longitude)
	return nil
}

// handleStart registers the sender. A missing or unknown team code files the
// sender under the unassigned bucket (once) with a rescan hint; a valid code
// adds idempotently and answers with the team briefing.
func (e *Engine) handleStart(ctx context.Context, ev telegram.Event) error {
	parts := strings.Fields(ev.Text)
	teamCode := ""
	if len(parts) > 1 {
		teamCode = parts[1]
	}

	if !e.isValidTeam(teamCode) {
		if _, err := e.reg.Add(ctx, domain.TeamUnassigned, ev.SenderID); err != nil {
			return err
		}
		e.logger.Warn("registration with unknown team code",
			zap.Int64("sender", ev.SenderID),
			zap.String("code", teamCode))
		return e.reply(ctx, ev, replyRescanQR)
	}

	if _, err := e.reg.Add(ctx, teamCode, ev.SenderID); err != nil {
		return err
	}
	return e.reply(ctx, ev, e.script.WelcomeFor(teamCode))
}

func (e *Engine) handleFallback(ctx context.Context, ev telegram.Event) error {
	teamCode, _ := e.reg.TeamOf(ev.SenderID)
	e.logger.Info("unrecognized message",
		zap.Int64("sender", ev.SenderID),
		zap.String("team", teamCode),
		zap.String("text", ev.Text))
	return e.reply(ctx, ev, replyUnrecognized)
}
