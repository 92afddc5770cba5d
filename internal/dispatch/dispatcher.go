// Package dispatch fans one payload out to every member of a team, or to
// every registered member at once. Deliveries are independent: one failing
// recipient never aborts the rest of the batch, and the caller always sees
// aggregate success.
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/observability"
	"github.com/TheTimMir/dnlit-quest-bot/internal/registry"
)

// Photo references an already-uploaded Telegram file or a local path.
// Exactly one of FileID and Path should be set.
type Photo struct {
	FileID  string
	Path    string
	Caption string
}

// Sender is the outbound half of the transport used for fan-out.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photo Photo) error
	SendLocation(ctx context.Context, chatID int64, latitude, longitude float64) error
}

// Dispatcher delivers payloads to team members one recipient at a time.
type Dispatcher struct {
	registry *registry.Registry
	sender   Sender
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// New creates a dispatcher over the given registry and transport.
func New(reg *registry.Registry, sender Sender, logger *zap.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{registry: reg, sender: sender, logger: logger, metrics: metrics}
}

// TextToTeam sends text to every member of the team.
func (d *Dispatcher) TextToTeam(ctx context.Context, teamCode, text string) {
	for _, memberID := range d.registry.Members(teamCode) {
		d.deliver(teamCode, memberID, d.sender.SendText(ctx, memberID, text))
	}
}

// PhotoToTeam sends the photo to every member of the team.
func (d *Dispatcher) PhotoToTeam(ctx context.Context, teamCode string, photo Photo) {
	for _, memberID := range d.registry.Members(teamCode) {
		d.deliver(teamCode, memberID, d.sender.SendPhoto(ctx, memberID, photo))
	}
}

// LocationToTeam sends the coordinate to every member of the team.
func (d *Dispatcher) LocationToTeam(ctx context.Context, teamCode string, latitude, longitude float64) {
	for _, memberID := range d.registry.Members(teamCode) {
		d.deliver(teamCode, memberID, d.sender.SendLocation(ctx, memberID, latitude, longitude))
	}
}

// BroadcastText sends text to every registered member across all teams,
// including the reserved buckets.
func (d *Dispatcher) BroadcastText(ctx context.Context, text string) {
	for _, teamCode := range d.registry.Teams() {
		d.TextToTeam(ctx, teamCode, text)
	}
}

// deliver records one attempt. Failures are logged with recipient and team
// context and do not propagate.
func (d *Dispatcher) deliver(teamCode string, memberID int64, err error) {
	d.metrics.RecordDelivery(err == nil)
	if err != nil {
		d.logger.Warn("delivery failed",
			zap.Int64("member", memberID),
			zap.String("team", teamCode),
			zap.Error(err))
	}
}
