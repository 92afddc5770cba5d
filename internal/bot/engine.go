// Package bot classifies inbound events and runs the scripted reactions.
// Triggers form an ordered table evaluated top to bottom; the first match
// wins and no further trigger runs. Order is part of the contract: callback
// interactions, then photos, then exact puzzle words, then the secret code,
// then commands, then the text fallback.
package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/dispatch"
	"github.com/TheTimMir/dnlit-quest-bot/internal/observability"
	"github.com/TheTimMir/dnlit-quest-bot/internal/quest"
	"github.com/TheTimMir/dnlit-quest-bot/internal/registry"
	"github.com/TheTimMir/dnlit-quest-bot/internal/telegram"
)

// Transport is the outbound surface the handlers need beyond team fan-out.
type Transport interface {
	dispatch.Sender
	SendReviewRequest(ctx context.Context, chatID int64, photo dispatch.Photo, teamCode string) error
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error
	DisplayName(ctx context.Context, memberID int64) (string, error)
}

// Dependencies bundles everything the engine needs.
type Dependencies struct {
	Script     *quest.Script
	Registry   *registry.Registry
	Dispatcher *dispatch.Dispatcher
	Transport  Transport
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

type trigger struct {
	name   string
	match  func(telegram.Event) bool
	handle func(context.Context, telegram.Event) error
}

// Engine routes each inbound event to the first matching trigger.
type Engine struct {
	adminID    int64
	validTeams map[string]struct{}
	script     *quest.Script
	reg        *registry.Registry
	disp       *dispatch.Dispatcher
	tr         Transport
	logger     *zap.Logger
	metrics    *observability.Metrics
	triggers   []trigger
}

// New builds the engine and its trigger table. teamCodes is the closed set of
// valid team codes; adminID is the only identifier allowed to run the
// administration surface.
func New(adminID int64, teamCodes []string, deps Dependencies) *Engine {
	e := &Engine{
		adminID:    adminID,
		validTeams: make(map[string]struct{}, len(teamCodes)),
		script:     deps.Script,
		reg:        deps.Registry,
		disp:       deps.Dispatcher,
		tr:         deps.Transport,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
	for _, code := range teamCodes {
		e.validTeams[code] = struct{}{}
	}

	e.triggers = []trigger{
		{name: "approve", match: matchCallback(telegram.CallbackApprovePrefix), handle: e.handleApprove},
		{name: "reject", match: matchCallback(telegram.CallbackRejectPrefix), handle: e.handleReject},
		{name: "photo", match: matchKind(telegram.EventPhoto), handle: e.handlePhoto},
	}
	for _, word := range e.script.Words {
		word := word
		e.triggers = append(e.triggers, trigger{
			name:   "word:" + word.Word,
			match:  matchWord(word.Word),
			handle: e.wordHandler(word),
		})
	}
	e.triggers = append(e.triggers,
		trigger{name: "hint", match: matchWord(e.script.Hint.Word), handle: e.handleHint},
		trigger{name: "code", match: e.matchCode, handle: e.handleCode},
		trigger{name: "start", match: matchCommand("/start"), handle: e.handleStart},
		trigger{name: "broadcast", match: matchCommand("/bc"), handle: e.handleBroadcast},
		trigger{name: "team_message", match: matchCommand("/msg"), handle: e.handleTeamMessage},
		trigger{name: "list", match: matchCommand("/list"), handle: e.handleList},
		trigger{name: "remove", match: matchCommand("/rem"), handle: e.handleRemove},
		trigger{name: "add", match: matchCommand("/add"), handle: e.handleAdd},
		trigger{name: "fallback", match: matchKind(telegram.EventText), handle: e.handleFallback},
	)
	return e
}

// Run consumes events until the channel closes or the context is canceled.
func (e *Engine) Run(ctx context.Context, events <-chan telegram.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			e.Handle(ctx, ev)
		}
	}
}

// Handle routes one event. Handler errors are logged, never fatal.
func (e *Engine) Handle(ctx context.Context, ev telegram.Event) {
	e.metrics.RecordUpdate(ev.Kind.String())

	for _, t := range e.triggers {
		if !t.match(ev) {
			continue
		}
		e.metrics.RecordTrigger(t.name)
		if err := t.handle(ctx, ev); err != nil {
			e.logger.Error("trigger failed",
				zap.String("trigger", t.name),
				zap.Int64("sender", ev.SenderID),
				zap.Error(err))
		}
		return
	}

	e.logger.Debug("unhandled event",
		zap.String("kind", ev.Kind.String()),
		zap.Int64("sender", ev.SenderID))
}

// reply answers the sender directly; a failed reply is logged and dropped.
func (e *Engine) reply(ctx context.Context, ev telegram.Event, text string) error {
	if err := e.tr.SendText(ctx, ev.ChatID, text); err != nil {
		e.logger.Warn("reply failed", zap.Int64("chat", ev.ChatID), zap.Error(err))
	}
	return nil
}

func (e *Engine) isAdmin(senderID int64) bool {
	return senderID == e.adminID
}

func (e *Engine) isValidTeam(code string) bool {
	_, ok := e.validTeams[code]
	return ok
}

func (e *Engine) matchCode(ev telegram.Event) bool {
	return ev.Kind == telegram.EventText && e.script.MatchesCode(ev.Text)
}

func matchKind(kind telegram.EventKind) func(telegram.Event) bool {
	return func(ev telegram.Event) bool {
		return ev.Kind == kind
	}
}

func matchCallback(prefix string) func(telegram.Event) bool {
	return func(ev telegram.Event) bool {
		return ev.Kind == telegram.EventCallback && strings.HasPrefix(ev.CallbackData, prefix)
	}
}

func matchWord(word string) func(telegram.Event) bool {
	return func(ev telegram.Event) bool {
		return ev.Kind == telegram.EventText && strings.EqualFold(strings.TrimSpace(ev.Text), word)
	}
}

func matchCommand(command string) func(telegram.Event) bool {
	return func(ev telegram.Event) bool {
		return ev.Kind == telegram.EventText && strings.HasPrefix(ev.Text, command)
	}
}
