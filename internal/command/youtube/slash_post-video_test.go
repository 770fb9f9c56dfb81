package youtube

import (
	"context"
	"errors"
	"testing"

	"guildkeeper/internal/command"
	"guildkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type postVideoFixture struct {
	cmd       *PostVideoCommand
	store     *storage.Store
	followups []string
	posted    []*discordgo.MessageEmbed
	postErr   error
}

func newPostVideoFixture(t *testing.T) *postVideoFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	store, err := storage.New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	_, err = store.RegisterGuild(ctx, "100", "Test Guild")
	require.NoError(t, err)
	require.NoError(t, store.UpdateGuildConfig(ctx, "100", "video_channel_id", "555"))

	f := &postVideoFixture{store: store, cmd: newPostVideoCommand()}
	f.cmd.ack = func(*discordgo.Session, *discordgo.InteractionCreate) error { return nil }
	f.cmd.followup = func(_ *discordgo.Session, _ *discordgo.InteractionCreate, content string) error {
		f.followups = append(f.followups, content)
		return nil
	}
	f.cmd.post = func(_ *discordgo.Session, _ string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
		if f.postErr != nil {
			return nil, f.postErr
		}
		f.posted = append(f.posted, embed)
		return &discordgo.Message{ID: "1"}, nil
	}
	f.cmd.fetchTitle = func(context.Context, string) string { return "Fetched Title" }
	return f
}

func (f *postVideoFixture) run(t *testing.T, opts ...*discordgo.ApplicationCommandInteractionDataOption) {
	t.Helper()
	sc := &command.SlashContext{
		Store: f.store,
		Event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "100",
			Data:    discordgo.ApplicationCommandInteractionData{Name: "post-video", Options: opts},
		}},
	}
	require.NoError(t, f.cmd.Run(context.Background(), sc))
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value,
	}
}

func TestPostVideoSendsAndRecords(t *testing.T) {
	f := newPostVideoFixture(t)

	f.run(t, strOpt("link", "https://youtu.be/dQw4w9WgXcQ"), strOpt("title", "Launch"))

	require.Len(t, f.posted, 1)
	assert.Equal(t, "Launch", f.posted[0].Title)
	require.Len(t, f.followups, 1)
	assert.Equal(t, "Video posted.", f.followups[0])

	// The pair is now on record.
	first, err := f.store.MarkVideoPosted(context.Background(), "dQw4w9WgXcQ", "100")
	require.NoError(t, err)
	assert.False(t, first)
}

func TestPostVideoFailedSendIsNotRecorded(t *testing.T) {
	f := newPostVideoFixture(t)
	f.postErr = errors.New("missing access")

	f.run(t, strOpt("link", "https://youtu.be/dQw4w9WgXcQ"), strOpt("title", "Launch"))

	require.Len(t, f.followups, 1)
	assert.Contains(t, f.followups[0], "not allowed to post")

	// The failed attempt must not count as a post.
	first, err := f.store.MarkVideoPosted(context.Background(), "dQw4w9WgXcQ", "100")
	require.NoError(t, err)
	assert.True(t, first)
}

func TestPostVideoRepostWarns(t *testing.T) {
	f := newPostVideoFixture(t)

	f.run(t, strOpt("link", "https://youtu.be/dQw4w9WgXcQ"), strOpt("title", "Launch"))
	f.run(t, strOpt("link", "https://youtu.be/dQw4w9WgXcQ"), strOpt("title", "Launch"))

	require.Len(t, f.posted, 2, "reposting warns but still posts")
	require.Len(t, f.followups, 2)
	assert.Equal(t, "Video posted.", f.followups[0])
	assert.Contains(t, f.followups[1], "posted to this server before")
}

func TestPostVideoRejectsInvalidLink(t *testing.T) {
	f := newPostVideoFixture(t)

	f.run(t, strOpt("link", "https://example.com/watch?v=abc"), strOpt("title", "Launch"))

	assert.Empty(t, f.posted)
	require.Len(t, f.followups, 1)
	assert.Contains(t, f.followups[0], "valid YouTube link")
}

func TestPostVideoFetchesMissingTitle(t *testing.T) {
	f := newPostVideoFixture(t)

	f.run(t, strOpt("link", "https://youtu.be/dQw4w9WgXcQ"))

	require.Len(t, f.posted, 1)
	assert.Equal(t, "Fetched Title", f.posted[0].Title)
}
