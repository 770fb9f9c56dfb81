package storage

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testModules = []string{
	"command.management_module",
	"command.moderation_module",
	"command.server_module",
	"command.youtube_module",
}

// newTestStore opens an in-memory database with the full schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	s, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newRegisteredGuild registers a guild and bootstraps its modules.
func newRegisteredGuild(t *testing.T, s *Store, guildID string) {
	t.Helper()
	ctx := context.Background()
	created, err := s.RegisterGuild(ctx, guildID, "Test Guild")
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, s.BootstrapModules(ctx, guildID, testModules))
}
