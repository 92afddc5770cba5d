// Package registry owns the team membership mapping. It is the single source
// of truth for who receives which notification; every mutation is persisted
// to the configured store before it returns.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
	"github.com/TheTimMir/dnlit-quest-bot/internal/storage"
)

// Registry is a concurrency-safe membership mapping backed by a storage.Store.
// The bot mutates it from the update loop while the operations HTTP server
// reads it concurrently, so all access goes through the lock.
type Registry struct {
	mu      sync.RWMutex
	codes   []string // iteration order: configured teams, extras, reserved
	members map[string][]int64
	store   storage.Store
	logger  *zap.Logger
}

// New loads the snapshot from the store, or seeds a default registry on first
// run: one empty list per configured team code plus the reserved buckets, with
// the coordinator pre-filed under the privileged one.
func New(ctx context.Context, store storage.Store, teamCodes []string, adminID int64, logger *zap.Logger) (*Registry, error) {
	r := &Registry{
		members: make(map[string][]int64),
		store:   store,
		logger:  logger,
	}

	snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		for _, code := range teamCodes {
			r.members[code] = []int64{}
		}
		r.members[domain.TeamUnassigned] = []int64{}
		r.members[domain.TeamPrivileged] = []int64{adminID}
		r.codes = teamOrder(teamCodes, r.members)
		if err := store.Save(ctx, r.snapshotLocked()); err != nil {
			return nil, fmt.Errorf("seed registry: %w", err)
		}
		logger.Info("seeded default registry", zap.Strings("teams", r.codes))
	case err != nil:
		return nil, fmt.Errorf("load registry: %w", err)
	default:
		for code, ids := range snap {
			r.members[code] = append([]int64(nil), ids...)
		}
		for _, code := range teamCodes {
			if _, ok := r.members[code]; !ok {
				r.members[code] = []int64{}
			}
		}
		// the reserved buckets must always exist
		for _, code := range []string{domain.TeamUnassigned, domain.TeamPrivileged} {
			if _, ok := r.members[code]; !ok {
				r.members[code] = []int64{}
			}
		}
		r.codes = teamOrder(teamCodes, r.members)
		logger.Info("loaded registry", zap.Strings("teams", r.codes))
	}

	return r, nil
}

// Add appends the member to the team if absent and persists. It reports
// whether the registry changed; adding an existing member is a logged no-op.
func (r *Registry) Add(ctx context.Context, teamCode string, memberID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.members[teamCode] {
		if id == memberID {
			r.logger.Info("member already registered",
				zap.Int64("member", memberID), zap.String("team", teamCode))
			return false, nil
		}
	}

	if _, ok := r.members[teamCode]; !ok {
		r.codes = append(r.codes, teamCode)
	}
	r.members[teamCode] = append(r.members[teamCode], memberID)
	if err := r.persistLocked(ctx); err != nil {
		return true, err
	}
	r.logger.Info("registered member",
		zap.Int64("member", memberID), zap.String("team", teamCode))
	return true, nil
}

// TeamOf returns the first team holding the member, in team order.
func (r *Registry) TeamOf(memberID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, code := range r.codes {
		for _, id := range r.members[code] {
			if id == memberID {
				return code, true
			}
		}
	}
	return "", false
}

// Remove takes the member out of every team that holds it and files it under
// the unassigned bucket, persisting once. It reports whether any team held
// the member.
func (r *Registry) Remove(ctx context.Context, memberID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	for code, ids := range r.members {
		kept := ids[:0]
		for _, id := range ids {
			if id == memberID {
				removed = true
				r.logger.Info("member moved out of team",
					zap.Int64("member", memberID), zap.String("team", code))
				continue
			}
			kept = append(kept, id)
		}
		r.members[code] = kept
	}
	if !removed {
		return false, nil
	}

	r.members[domain.TeamUnassigned] = append(r.members[domain.TeamUnassigned], memberID)
	return true, r.persistLocked(ctx)
}

// Members returns a copy of the team's member list, empty if unknown.
func (r *Registry) Members(teamCode string) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int64, len(r.members[teamCode]))
	copy(out, r.members[teamCode])
	return out
}

// Teams returns every team code in iteration order, reserved buckets last.
func (r *Registry) Teams() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.codes...)
}

// Snapshot returns a deep copy of the whole mapping.
func (r *Registry) Snapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() domain.Snapshot {
	return domain.Snapshot(r.members).Clone()
}

func (r *Registry) persistLocked(ctx context.Context) error {
	if err := r.store.Save(ctx, r.snapshotLocked()); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}
	return nil
}

// teamOrder lists configured codes first, then codes found only in the
// snapshot (sorted, for determinism), then the reserved buckets.
func teamOrder(teamCodes []string, members map[string][]int64) []string {
	known := make(map[string]struct{}, len(teamCodes)+2)
	order := make([]string, 0, len(members))
	for _, code := range teamCodes {
		known[code] = struct{}{}
		order = append(order, code)
	}
	known[domain.TeamUnassigned] = struct{}{}
	known[domain.TeamPrivileged] = struct{}{}

	var extras []string
	for code := range members {
		if _, ok := known[code]; !ok {
			extras = append(extras, code)
		}
	}
	sort.Strings(extras)
	order = append(order, extras...)
	return append(order, domain.TeamUnassigned, domain.TeamPrivileged)
}
