package gate

import (
	"context"
	"testing"

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
	"command.server_module",
	"command.youtube_module",
})

type gateFixture struct {
	gate    *Gate
	store   *storage.Store
	replies []string
}

func newFixture(t *testing.T) *gateFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	store, err := storage.New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &gateFixture{store: store}
	f.gate = New(store, testCatalog)
	f.gate.reply = func(_ *discordgo.Session, _ *discordgo.InteractionCreate, msg string) error {
		f.replies = append(f.replies, msg)
		return nil
	}
	return f
}

func (f *gateFixture) register(t *testing.T, guildID string) {
	t.Helper()
	ctx := context.Background()
	created, err := f.store.RegisterGuild(ctx, guildID, "Test Guild")
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, f.store.BootstrapModules(ctx, guildID, testCatalog.All()))
}

func interaction(guildID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{GuildID: guildID}}
}

func TestGateDeniesOutsideGuildSilently(t *testing.T) {
	f := newFixture(t)

	allowed := f.gate.Check(context.Background(), nil, interaction(""), "command.youtube_module")
	assert.False(t, allowed)
	assert.Empty(t, f.replies, "denial outside a guild must be silent")
}

func TestGateAllowsModulelessCommands(t *testing.T) {
	f := newFixture(t)

	allowed := f.gate.Check(context.Background(), nil, interaction("100"), "")
	assert.True(t, allowed)
	assert.Empty(t, f.replies)
}

func TestGateAlwaysAllowsPrivilegedModule(t *testing.T) {
	f := newFixture(t)
	// Deliberately no registration, no bootstrap: the privileged module must
	// pass regardless of enablement state.
	allowed := f.gate.Check(context.Background(), nil, interaction("100"), modules.Privileged)
	assert.True(t, allowed)
	assert.Empty(t, f.replies)
}

func TestGateAllowsEnabledModule(t *testing.T) {
	f := newFixture(t)
	f.register(t, "100")

	allowed := f.gate.Check(context.Background(), nil, interaction("100"), "command.youtube_module")
	assert.True(t, allowed)
	assert.Empty(t, f.replies, "the gate must not consume the response on allow")
}

func TestGateDeniesDisabledModuleWithRemediation(t *testing.T) {
	f := newFixture(t)
	f.register(t, "100")
	ctx := context.Background()
	require.NoError(t, f.store.SetModuleEnabled(ctx, "100", "command.youtube_module", false))

	allowed := f.gate.Check(ctx, nil, interaction("100"), "command.youtube_module")
	assert.False(t, allowed)
	require.Len(t, f.replies, 1)
	assert.Contains(t, f.replies[0], "`youtube`")
	assert.Contains(t, f.replies[0], "/modules enable youtube")
}

func TestGateFailsClosedForUnbootstrappedGuild(t *testing.T) {
	f := newFixture(t)
	// Guild known to Discord but never registered: no rows means disabled.
	allowed := f.gate.Check(context.Background(), nil, interaction("300"), "command.server_module")
	assert.False(t, allowed)
	require.Len(t, f.replies, 1)
	assert.Contains(t, f.replies[0], "`server`")
}

func TestGateStorageFailureIsExplicit(t *testing.T) {
	f := newFixture(t)
	f.register(t, "100")
	require.NoError(t, f.store.Close())

	allowed := f.gate.Check(context.Background(), nil, interaction("100"), "command.youtube_module")
	assert.False(t, allowed)
	require.Len(t, f.replies, 1)
	assert.Contains(t, f.replies[0], "try again",
		"storage failure must be an explicit error reply, not a denial")
	assert.NotContains(t, f.replies[0], "/modules enable")
}

func TestGateToggleScenario(t *testing.T) {
	f := newFixture(t)
	f.register(t, "100")
	ctx := context.Background()
	moduleID := "command.youtube_module"

	assert.True(t, f.gate.Check(ctx, nil, interaction("100"), moduleID))

	require.NoError(t, f.store.SetModuleEnabled(ctx, "100", moduleID, false))
	assert.False(t, f.gate.Check(ctx, nil, interaction("100"), moduleID))

	require.NoError(t, f.store.SetModuleEnabled(ctx, "100", moduleID, true))
	assert.True(t, f.gate.Check(ctx, nil, interaction("100"), moduleID))
}
