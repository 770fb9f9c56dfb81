package discord

import (
	"context"
	"errors"
	"testing"

	"guildkeeper/internal/command"
	"guildkeeper/internal/config"
	"guildkeeper/internal/gate"
	"guildkeeper/internal/modules"
	"guildkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testCatalog = modules.New([]string{
	modules.Privileged,
	"command.moderation_module",
	"command.youtube_module",
})

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	store, err := storage.New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{SyncCommands: false}
	b := New(cfg, store, testCatalog, gate.New(store, testCatalog))
	b.ctx = context.Background()
	return b
}

func TestGuildCreateRegistersAndBootstraps(t *testing.T) {
	b := newTestBot(t)

	b.onGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{
		ID: "100", Name: "Test Guild",
	}})

	cfg, err := b.store.GuildConfig(b.ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Test Guild", cfg.Name)

	enabled, err := b.store.EnabledModules(b.ctx, "100")
	require.NoError(t, err)
	assert.ElementsMatch(t, testCatalog.All(), enabled)
}

func TestGuildCreateSkipsUnavailableGuilds(t *testing.T) {
	b := newTestBot(t)

	b.onGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{
		ID: "100", Unavailable: true,
	}})

	_, err := b.store.GuildConfig(b.ctx, "100")
	assert.ErrorIs(t, err, storage.ErrGuildNotRegistered)
}

func TestReadyLeavesRegistrationToGuildCreate(t *testing.T) {
	b := newTestBot(t)

	// The ready payload carries unavailable stubs: only the ID is set. If
	// registration ran here, the guild would be stored with an empty name
	// that a later guild-create event could never repair.
	s := &discordgo.Session{State: discordgo.NewState()}
	s.State.User = &discordgo.User{Username: "bot"}
	b.onReady(s, &discordgo.Ready{Guilds: []*discordgo.Guild{{ID: "100"}}})

	_, err := b.store.GuildConfig(b.ctx, "100")
	assert.ErrorIs(t, err, storage.ErrGuildNotRegistered)

	b.onGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{
		ID: "100", Name: "Test Guild",
	}})
	cfg, err := b.store.GuildConfig(b.ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Test Guild", cfg.Name)
}

// TestGuildCreateHonorsSyncToggle relies on the nil session: if the handler
// ignored the toggle and reached the sync path, the test would panic.
func TestGuildCreateHonorsSyncToggle(t *testing.T) {
	b := newTestBot(t)
	b.cfg.SyncCommands = false

	assert.NotPanics(t, func() {
		b.onGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{
			ID: "100", Name: "Test Guild",
		}})
	})
}

type failingCommand struct{}

func (c *failingCommand) Name() string { return "always-fails" }
func (c *failingCommand) Description() string { return "test command" }
func (c *failingCommand) Module() string { return "" }
func (c *failingCommand) Category() string { return "test" }
func (c *failingCommand) UserPermissions() []int64 { return nil }
func (c *failingCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	return errors.New("boom")
}

func TestDispatchReportsHandlerFailure(t *testing.T) {
	b := newTestBot(t)
	command.Register(&failingCommand{})

	var failures []string
	b.fail = func(_ *discordgo.Session, _ *discordgo.InteractionCreate, msg string) {
		failures = append(failures, msg)
	}

	b.dispatchCommand(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "100",
		Data:    discordgo.ApplicationCommandInteractionData{Name: "always-fails"},
	}})

	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "try again")
}
