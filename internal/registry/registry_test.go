package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
	"github.com/TheTimMir/dnlit-quest-bot/internal/storage"
)

// memStore is an in-memory storage.Store recording every save.
type memStore struct {
	snap  domain.Snapshot
	saves int
}

func (s *memStore) Load(context.Context) (domain.Snapshot, error) {
	if s.snap == nil {
		return nil, storage.ErrNoSnapshot
	}
	return s.snap.Clone(), nil
}

func (s *memStore) Save(_ context.Context, snap domain.Snapshot) error {
	s.snap = snap.Clone()
	s.saves++
	return nil
}

func (s *memStore) Ping(context.Context) error { return nil }
func (s *memStore) Close()                     {}

var testTeams = []string{"9A", "9B", "10A"}

func newTestRegistry(t *testing.T, store *memStore) *Registry {
	t.Helper()
	reg, err := New(context.Background(), store, testTeams, 1, zap.NewNop())
	require.NoError(t, err)
	return reg
}

func TestNew_SeedsDefaults(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)

	assert.Equal(t, 1, store.saves)
	assert.Equal(t, []string{"9A", "9B", "10A", "other", "admin"}, reg.Teams())
	assert.Equal(t, []int64{1}, reg.Members(domain.TeamPrivileged))
	assert.Empty(t, reg.Members("9A"))
}

func TestNew_LoadsExistingAndEnsuresReserved(t *testing.T) {
	store := &memStore{snap: domain.Snapshot{"9A": {100}, "8Z": {300}}}
	reg := newTestRegistry(t, store)

	assert.Equal(t, []string{"9A", "9B", "10A", "8Z", "other", "admin"}, reg.Teams())
	assert.Equal(t, []int64{100}, reg.Members("9A"))
	assert.Equal(t, []int64{300}, reg.Members("8Z"))
	assert.Empty(t, reg.Members(domain.TeamUnassigned))
	assert.Empty(t, reg.Members(domain.TeamPrivileged))
}

func TestAdd_IsIdempotent(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)
	ctx := context.Background()

	added, err := reg.Add(ctx, "9A", 100)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = reg.Add(ctx, "9A", 100)
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []int64{100}, reg.Members("9A"))
	assert.Equal(t, 2, store.saves) // seed + one mutation; the no-op did not persist
}

func TestAdd_PersistsEveryMutation(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)
	ctx := context.Background()

	_, err := reg.Add(ctx, "9A", 100)
	require.NoError(t, err)
	_, err = reg.Add(ctx, "9A", 200)
	require.NoError(t, err)

	assert.Equal(t, []int64{100, 200}, store.snap["9A"])
}

func TestTeamOf(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)
	ctx := context.Background()

	_, err := reg.Add(ctx, "9B", 100)
	require.NoError(t, err)

	team, ok := reg.TeamOf(100)
	assert.True(t, ok)
	assert.Equal(t, "9B", team)

	_, ok = reg.TeamOf(999)
	assert.False(t, ok)
}

func TestRemove_RelocatesToUnassigned(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)
	ctx := context.Background()

	_, err := reg.Add(ctx, "9A", 100)
	require.NoError(t, err)
	_, err = reg.Add(ctx, "9A", 200)
	require.NoError(t, err)
	saves := store.saves

	moved, err := reg.Remove(ctx, 100)
	require.NoError(t, err)
	assert.True(t, moved)

	team, ok := reg.TeamOf(100)
	assert.True(t, ok)
	assert.Equal(t, domain.TeamUnassigned, team)
	assert.Equal(t, []int64{200}, reg.Members("9A"))
	assert.Equal(t, saves+1, store.saves) // single persist for the whole relocation
}

func TestRemove_NotFound(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)

	moved, err := reg.Remove(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, reg.Members(domain.TeamUnassigned))
}

func TestMembers_ReturnsCopy(t *testing.T) {
	store := &memStore{}
	reg := newTestRegistry(t, store)
	ctx := context.Background()

	_, err := reg.Add(ctx, "9A", 100)
	require.NoError(t, err)

	members := reg.Members("9A")
	members[0] = 999
	assert.Equal(t, []int64{100}, reg.Members("9A"))
}
