// Package discord runs the gateway session: it receives events, registers
// guilds, scans messages, and dispatches slash commands through the feature
// gate into the command registry.
package discord

import (
	"context"
	"fmt"
	"time"

	"guildkeeper/internal/command"
	"guildkeeper/internal/config"
	"guildkeeper/internal/filter"
	"guildkeeper/internal/gate"
	"guildkeeper/internal/modules"
	"guildkeeper/internal/respond"
	"guildkeeper/internal/storage"
	"guildkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// noticeTTL is how long the bad-word deletion notice stays visible.
const noticeTTL = 10 * time.Second

// Bot wires the gateway session to the store, catalog, and gate. The gate is
// injected at construction and consulted exactly once per application-command
// interaction, before any handler runs.
type Bot struct {
	dg      *discordgo.Session
	store   *storage.Store
	catalog *modules.Catalog
	gate    *gate.Gate
	cfg     *config.Config

	// fail reports a handler failure to the user. Injected so tests can run
	// dispatch without a live session.
	fail func(s *discordgo.Session, i *discordgo.InteractionCreate, msg string)

	// ctx is the process context handlers use for storage calls; set by Run.
	ctx context.Context
}

// New builds a bot. Call Run to connect.
func New(cfg *config.Config, store *storage.Store, catalog *modules.Catalog, g *gate.Gate) *Bot {
	return &Bot{cfg: cfg, store: store, catalog: catalog, gate: g, fail: respond.EphemeralOrFollowup}
}

// Run connects to the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open gateway session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")
	return nil
}

// onReady only announces. The guilds in the ready payload are unavailable
// stubs carrying just an ID, so registration waits for the guild-create
// events the gateway sends right after; registering here would store every
// guild with an empty name that the create event could never repair.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("bot", s.State.User.Username).Int("guilds", len(r.Guilds)).Msg("bot is running")
}

// onGuildCreate fires once per guild after every (re)connect and when the bot
// joins a new guild; registration is idempotent either way.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Unavailable {
		return
	}
	b.registerGuild(g.ID, g.Name)
	if !b.cfg.SyncCommands {
		return
	}
	if err := b.syncCommands(g.ID); err != nil {
		log.Error().Err(err).Str("guild", g.ID).Msg("slash command sync failed")
	}
}

// registerGuild creates the guild row if missing and, only then, seeds every
// catalog module as enabled. A known guild short-circuits, so an admin's
// later toggles are never overwritten.
func (b *Bot) registerGuild(guildID, name string) {
	created, err := b.store.RegisterGuild(b.ctx, guildID, name)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("guild registration failed")
		return
	}
	if !created {
		return
	}
	log.Info().Str("guild", guildID).Str("name", name).Msg("new guild registered")
	if err := b.store.BootstrapModules(b.ctx, guildID, b.catalog.All()); err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("module bootstrap failed")
	}
}

// onMessageCreate runs the bad-word filter on every guild message.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	words, err := b.store.BadWords(b.ctx, m.GuildID)
	if err != nil {
		log.Error().Err(err).Str("guild", m.GuildID).Msg("bad word lookup failed")
		return
	}
	word, hit := filter.Match(m.Content, words)
	if !hit {
		return
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Warn().Err(err).Str("guild", m.GuildID).Msg("not allowed to delete message")
		return
	}
	log.Info().Str("guild", m.GuildID).Str("word", word).Msg("message deleted by bad word filter")

	notice, err := respond.Message(s, m.ChannelID, fmt.Sprintf(
		"<@%s>, your message contained a banned word and was removed.", m.Author.ID))
	if err != nil {
		return
	}
	respond.DeleteAfter(s, m.ChannelID, notice.ID, noticeTTL)
}

// onInteractionCreate dispatches slash commands and autocomplete. Command
// execution order is fixed: resolve the command, run the gate, then the
// handler; the gate's reply (if any) is the only response it may consume.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.dispatchAutocomplete(s, i)
	}
}

func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	c := cmd.DefaultRegistry.Get(name)
	if c == nil {
		log.Warn().Str("command", name).Msg("unknown command")
		return
	}

	if !b.gate.Check(b.ctx, s, i, command.ModuleOf(c)) {
		return
	}

	sc := &command.SlashContext{
		Session:     s,
		Event:       i,
		Store:       b.store,
		Catalog:     b.catalog,
		DeveloperID: b.cfg.DeveloperID,
	}
	if err := c.Run(b.ctx, &cmd.Invocation{Data: sc}); err != nil {
		log.Error().Err(err).Str("command", name).Str("guild", i.GuildID).Msg("command failed")
		b.fail(s, i, "Something went wrong running that command. Please try again.")
	}
}

func (b *Bot) dispatchAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	c := cmd.DefaultRegistry.Get(name)
	if c == nil {
		return
	}
	ap, ok := cmd.Root(c).(command.AutocompleteProvider)
	if !ok {
		return
	}

	choices, err := ap.Autocomplete(b.ctx, &command.AutocompleteContext{
		Session: s,
		Event:   i,
		Store:   b.store,
		Catalog: b.catalog,
	})
	if err != nil {
		log.Warn().Err(err).Str("command", name).Msg("autocomplete failed")
		return
	}
	if err := respond.Autocomplete(s, i, choices); err != nil {
		log.Warn().Err(err).Str("command", name).Msg("autocomplete reply not delivered")
	}
}
