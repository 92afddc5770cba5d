package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/TheTimMir/dnlit-quest-bot/internal/config"
	"github.com/TheTimMir/dnlit-quest-bot/internal/domain"
)

// PostgresStore keeps the snapshot in a single table. Save replaces the whole
// table in one transaction, mirroring the file backend's overwrite semantics.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore establishes a connection pool and ensures the schema.
func NewPostgresStore(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	const schema = `
        CREATE TABLE IF NOT EXISTS team_members (
            team_code TEXT   NOT NULL,
            member_id BIGINT NOT NULL,
            position  INT    NOT NULL,
            PRIMARY KEY (team_code, member_id)
        )`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("connected to postgres")
	return &PostgresStore{pool: pool}, nil
}

// Load reads the snapshot, deduplicating each team's member list.
func (s *PostgresStore) Load(ctx context.Context) (domain.Snapshot, error) {
	const query = `
        SELECT team_code, member_id
        FROM team_members
        ORDER BY team_code, position`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := make(domain.Snapshot)
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, err
		}
		snap[code] = append(snap[code], id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(snap) == 0 {
		return nil, ErrNoSnapshot
	}
	return dedupe(snap), nil
}

// Save replaces the stored snapshot wholesale.
func (s *PostgresStore) Save(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM team_members`); err != nil {
		return err
	}
	const insert = `
        INSERT INTO team_members (team_code, member_id, position)
        VALUES ($1, $2, $3)`
	for code, members := range snap {
		for pos, id := range members {
			if _, err := tx.Exec(ctx, insert, code, id, pos); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases pool resources.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
