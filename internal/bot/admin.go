package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/dispatch"
	"github.com/TheTimMir/dnlit-quest-bot/internal/telegram"
)

// handleBroadcast (/bc <text>) sends a coordinator-prefixed message to every
// registered member across all teams, including the reserved buckets.
func (e *Engine) handleBroadcast(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		return e.reply(ctx, ev, replyNoPermission)
	}
	text := strings.TrimSpace(strings.TrimPrefix(ev.Text, "/bc"))
	if text == "" {
		return e.reply(ctx, ev, replyNeedText)
	}
	e.disp.BroadcastText(ctx, coordinatorPrefix+text)
	e.logger.Info("broadcast sent", zap.String("text", text))
	return e.reply(ctx, ev, replyBroadcastSent)
}

// handleTeamMessage (/msg <team> <text>) relays a coordinator message to one
// team only.
func (e *Engine) handleTeamMessage(ctx context.Context, ev telegram.Event) error {
	parts := strings.SplitN(ev.Text, " ", 3)
	if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
		return e.reply(ctx, ev, replyNeedTeamText)
	}
	teamCode, text := parts[1], parts[2]
	if !e.isValidTeam(teamCode) {
		return e.reply(ctx, ev, replyUnknownTeam)
	}
	e.disp.TextToTeam(ctx, teamCode, coordinatorPrefix+text)
	e.logger.Info("team message sent", zap.String("team", teamCode))
	return e.reply(ctx, ev, fmt.Sprintf("✅ Повідомлення надіслано команді %s.", teamCode))
}

// handleList (/list) renders one combined report of every team's members,
// resolving display names best-effort.
func (e *Engine) handleList(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		return e.reply(ctx, ev, replyNoPermission)
	}

	var report strings.Builder
	report.WriteString(listHeader)
	for _, teamCode := range e.reg.Teams() {
		members := e.reg.Members(teamCode)
		fmt.Fprintf(&report, "\n<b>Команда %s (%d):</b>\n", teamCode, len(members))
		if len(members) == 0 {
			report.WriteString(listEmptyTeam)
		}
		for _, memberID := range members {
			name, err := e.tr.DisplayName(ctx, memberID)
			if err != nil {
				e.logger.Warn("display name lookup failed",
					zap.Int64("member", memberID),
					zap.String("team", teamCode),
					zap.Error(err))
				fmt.Fprintf(&report, "- %d (невідомий користувач)\n", memberID)
				continue
			}
			fmt.Fprintf(&report, "- %s (%d)\n", name, memberID)
		}
		report.WriteString("\n")
	}
	return e.reply(ctx, ev, report.String())
}

// handleRemove (/rem <id>) relocates a member to the unassigned bucket.
func (e *Engine) handleRemove(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		return e.reply(ctx, ev, replyNoPermission)
	}
	parts := strings.Fields(ev.Text)
	if len(parts) < 2 {
		return e.reply(ctx, ev, replyNeedMemberID)
	}
	memberID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return e.reply(ctx, ev, replyNeedMemberID)
	}

	moved, err := e.reg.Remove(ctx, memberID)
	if err != nil {
		return err
	}
	if !moved {
		return e.reply(ctx, ev, "⚠️ Користувача не знайдено в жодній команді.")
	}
	return e.reply(ctx, ev, fmt.Sprintf("✅ Користувач %d переміщений до групи 'other'.", memberID))
}

// handleAdd (/add <id> <team>) adds a member by hand, confirming to the new
// member and notifying the coordinator with a best-effort resolved name.
func (e *Engine) handleAdd(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		return e.reply(ctx, ev, replyNoPermission)
	}
	parts := strings.Fields(ev.Text)
	if len(parts) < 3 {
		return e.reply(ctx, ev, replyNeedMemberTeam)
	}
	memberID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return e.reply(ctx, ev, replyNeedMemberTeam)
	}
	teamCode := parts[2]
	if !e.isValidTeam(teamCode) {
		return e.reply(ctx, ev, replyUnknownTeam)
	}

	added, err := e.reg.Add(ctx, teamCode, memberID)
	if err != nil {
		return err
	}
	if !added {
		return e.reply(ctx, ev, fmt.Sprintf("⚠️ Користувач %d вже є в команді %s.", memberID, teamCode))
	}

	if err := e.tr.SendText(ctx, memberID, fmt.Sprintf("✅ Ви додані до команди %s.", teamCode)); err != nil {
		e.logger.Warn("could not confirm addition to member",
			zap.Int64("member", memberID), zap.Error(err))
	}
	if name, err := e.tr.DisplayName(ctx, memberID); err != nil {
		e.logger.Warn("display name lookup failed",
			zap.Int64("member", memberID),
			zap.String("team", teamCode),
			zap.Error(err))
	} else if err := e.tr.SendText(ctx, e.adminID,
		fmt.Sprintf("👤 %s (%d) доданий до команди %s.", name, memberID, teamCode)); err != nil {
		e.logger.Warn("could not notify coordinator", zap.Error(err))
	}
	return e.reply(ctx, ev, fmt.Sprintf("✅ Користувач %d доданий до команди %s.", memberID, teamCode))
}

// handlePhoto routes a photo either into review (participants) or out to a
// team as a puzzle image (coordinator, team code in the caption).
func (e *Engine) handlePhoto(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		teamCode, ok := e.reg.TeamOf(ev.SenderID)
		e.logger.Info("photo submitted",
			zap.Int64("sender", ev.SenderID),
			zap.String("team", teamCode))
		if !ok {
			return e.reply(ctx, ev, replyNotRegistered)
		}
		if err := e.reply(ctx, ev, replyPendingReview); err != nil {
			return err
		}
		return e.tr.SendReviewRequest(ctx, e.adminID, dispatch.Photo{
			FileID:  ev.PhotoFileID,
			Caption: fmt.Sprintf("Фото от команды %s. Одобрить?", teamCode),
		}, teamCode)
	}

	teamCode := strings.TrimSpace(ev.Caption)
	e.disp.PhotoToTeam(ctx, teamCode, dispatch.Photo{
		FileID:  ev.PhotoFileID,
		Caption: e.script.Review.RebusCaption,
	})
	return e.reply(ctx, ev, fmt.Sprintf("✅ Фото надіслано команді %s.", teamCode))
}

// handleApprove notifies the submitting team of the next step and marks the
// reviewed message approved. Only the coordinator may review: the review
// keyboard is only ever sent to the coordinator, but the callback payload is
// attacker-forgeable, so the sender is checked explicitly.
func (e *Engine) handleApprove(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		e.logger.Warn("review callback from non-coordinator", zap.Int64("sender", ev.SenderID))
		return nil
	}
	teamCode := strings.TrimPrefix(ev.CallbackData, telegram.CallbackApprovePrefix)
	e.disp.TextToTeam(ctx, teamCode, e.script.Review.ApprovedReply)
	return e.tr.EditCaption(ctx, ev.CallbackChatID, ev.CallbackMessageID, e.script.Review.ApprovedCaption)
}

// handleReject notifies the submitting team and marks the reviewed message
// rejected.
func (e *Engine) handleReject(ctx context.Context, ev telegram.Event) error {
	if !e.isAdmin(ev.SenderID) {
		e.logger.Warn("review callback from non-coordinator", zap.Int64("sender", ev.SenderID))
		return nil
	}
	teamCode := strings.TrimPrefix(ev.CallbackData, telegram.CallbackRejectPrefix)
	e.disp.TextToTeam(ctx, teamCode, e.script.Review.RejectedReply)
	return e.tr.EditCaption(ctx, ev.CallbackChatID, ev.CallbackMessageID, e.script.Review.RejectedCaption)
}
