package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
	"github.com/TheTimMir/dnlit-quest-bot/internal/observability"
	"github.com/TheTimMir/dnlit-quest-bot/internal/registry"
	"github.com/TheTimMir/dnlit-quest-bot/internal/storage"
)

type memStore struct {
	snap domain.Snapshot
}

func (s *memStore) Load(context.Context) (domain.Snapshot, error) {
	if s.snap == nil {
		return nil, storage.ErrNoSnapshot
	}
	return s.snap.Clone(), nil
}
func (s *memStore) Save(_ context.Context, snap domain.Snapshot) error {
	s.snap = snap.Clone()
	return nil
}
func (s *memStore) Ping(context.Context) error { return nil }
func (s *memStore) Close()                     {}

// fakeSender records deliveries and fails for chat ids listed in failFor.
type fakeSender struct {
	texts     map[int64][]string
	photos    map[int64][]Photo
	locations map[int64][]Coordinate
	failFor   map[int64]bool
}

type Coordinate struct{ Lat, Lon float64 }

func newFakeSender() *fakeSender {
	return &fakeSender{
		texts:     make(map[int64][]string),
		photos:    make(map[int64][]Photo),
		locations: make(map[int64][]Coordinate),
		failFor:   make(map[int64]bool),
	}
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, text string) error {
	if f.failFor[chatID] {
		return errors.New("delivery refused")
	}
	f.texts[chatID] = append(f.texts[chatID], text)
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, chatID int64, photo Photo) error {
	if f.failFor[chatID] {
		return errors.New("delivery refused")
	}
	f.photos[chatID] = append(f.photos[chatID], photo)
	return nil
}

func (f *fakeSender) SendLocation(_ context.Context, chatID int64, lat, lon float64) error {
	if f.failFor[chatID] {
		return errors.New("delivery refused")
	}
	f.locations[chatID] = append(f.locations[chatID], Coordinate{lat, lon})
	return nil
}

func newTestDispatcher(t *testing.T, snap domain.Snapshot) (*Dispatcher, *fakeSender, *observability.Metrics) {
	t.Helper()
	reg, err := registry.New(context.Background(), &memStore{snap: snap}, []string{"9A", "9B"}, 1, zap.NewNop())
	require.NoError(t, err)
	sender := newFakeSender()
	metrics := observability.NewMetrics()
	return New(reg, sender, zap.NewNop(), metrics), sender, metrics
}

func TestTextToTeam_DeliversToEveryMember(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, domain.Snapshot{"9A": {100, 200, 300}})

	d.TextToTeam(context.Background(), "9A", "hello")

	for _, id := range []int64{100, 200, 300} {
		assert.Equal(t, []string{"hello"}, sender.texts[id])
	}
}

func TestTextToTeam_OneFailureDoesNotAbortBatch(t *testing.T) {
	d, sender, metrics := newTestDispatcher(t, domain.Snapshot{"9A": {100, 200, 300}})
	sender.failFor[200] = true

	d.TextToTeam(context.Background(), "9A", "hello")

	assert.Equal(t, []string{"hello"}, sender.texts[100])
	assert.Empty(t, sender.texts[200])
	assert.Equal(t, []string{"hello"}, sender.texts[300])

	stats := metrics.Stats()
	assert.Equal(t, int64(2), stats.Deliveries["ok"])
	assert.Equal(t, int64(1), stats.Deliveries["failed"])
}

func TestTextToTeam_UnknownTeamIsNoop(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, domain.Snapshot{"9A": {100}})

	d.TextToTeam(context.Background(), "nope", "hello")

	assert.Empty(t, sender.texts)
}

func TestLocationToTeam(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, domain.Snapshot{"9A": {100, 200}})

	d.LocationToTeam(context.Background(), "9A", 48.460187, 35.062562)

	assert.Equal(t, []Coordinate{{48.460187, 35.062562}}, sender.locations[100])
	assert.Equal(t, []Coordinate{{48.460187, 35.062562}}, sender.locations[200])
}

func TestBroadcastText_CoversReservedBuckets(t *testing.T) {
	d, sender, _ := newTestDispatcher(t, domain.Snapshot{
		"9A":    {100},
		"9B":    {200},
		"other": {300},
		"admin": {1},
	})

	d.BroadcastText(context.Background(), "to everyone")

	for _, id := range []int64{100, 200, 300, 1} {
		assert.Equal(t, []string{"to everyone"}, sender.texts[id], "member %d", id)
	}
}
