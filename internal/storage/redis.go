package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/config"
	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
)

const (
	redisTeamsKey      = "quest:teams"
	redisTeamKeyPrefix = "quest:team:"
)

// RedisStore keeps one list per team plus a list of team codes. Save rewrites
// every key in a single pipeline.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client}
}

// Load reads the snapshot, deduplicating each team's member list.
func (s *RedisStore) Load(ctx context.Context) (domain.Snapshot, error) {
	codes, err := s.client.LRange(ctx, redisTeamsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, ErrNoSnapshot
	}

	snap := make(domain.Snapshot, len(codes))
	for _, code := range codes {
		raw, err := s.client.LRange(ctx, redisTeamKeyPrefix+code, 0, -1).Result()
		if err != nil {
			return nil, err
		}
		members := make([]int64, 0, len(raw))
		for _, val := range raw {
			id, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corrupt member id %q for team %s: %w", val, code, err)
			}
			members = append(members, id)
		}
		snap[code] = members
	}
	return dedupe(snap), nil
}

// Save rewrites the stored snapshot wholesale.
func (s *RedisStore) Save(ctx context.Context, snap domain.Snapshot) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisTeamsKey)
		for code, members := range snap {
			key := redisTeamKeyPrefix + code
			pipe.Del(ctx, key)
			pipe.RPush(ctx, redisTeamsKey, code)
			for _, id := range members {
				pipe.RPush(ctx, key, strconv.FormatInt(id, 10))
			}
		}
		return nil
	})
	return err
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() {
	_ = s.client.Close()
}
