// Package storage persists the registry snapshot. Every backend stores the
// mapping wholesale: Save overwrites the previous snapshot completely.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/config"
	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
)

// ErrNoSnapshot is returned by Load when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("storage: no snapshot")

// Store persists registry snapshots.
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snap domain.Snapshot) error
	Ping(ctx context.Context) error
	Close()
}

// Open constructs the store selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Storage.File), nil
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.Postgres, logger)
	case config.BackendRedis:
		return NewRedisStore(cfg.Redis, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// dedupe drops repeated member ids within each team, keeping first occurrence
// order. Snapshots written by older versions may contain duplicates.
func dedupe(snap domain.Snapshot) domain.Snapshot {
	for code, members := range snap {
		seen := make(map[int64]struct{}, len(members))
		out := members[:0]
		for _, id := range members {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		snap[code] = out
	}
	return snap
}
