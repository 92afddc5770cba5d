package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("BOT_ADMIN_ID", "1")

	_, err := Load()
	assert.ErrorContains(t, err, "BOT_TOKEN")
}

func TestLoad_RequiresAdminID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_ADMIN_ID", "")

	_, err := Load()
	assert.ErrorContains(t, err, "BOT_ADMIN_ID")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_ADMIN_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Bot.AdminID)
	assert.Equal(t, []string{"9A", "9B", "10A", "10B", "10G"}, cfg.Quest.TeamCodes)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data.json", cfg.Storage.File)
	assert.False(t, cfg.HTTP.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_TeamCodesTrimmed(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_ADMIN_ID", "42")
	t.Setenv("QUEST_TEAM_CODES", " 9A, 9B ,,10A ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"9A", "9B", "10A"}, cfg.Quest.TeamCodes)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_ADMIN_ID", "42")
	t.Setenv("STORAGE_BACKEND", "mongodb")

	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_BACKEND")
}
