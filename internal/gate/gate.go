// Package gate implements the per-guild feature gate: the single check every
// application-command interaction passes before its handler runs. The gate is
// a plain value constructed in main and handed to the dispatcher; it holds no
// global state and reads enablement straight from the store on every decision.
package gate

import (
	"context"
	"fmt"

	"guildkeeper/internal/modules"
	"guildkeeper/internal/respond"
	"guildkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// replyFunc sends the ephemeral denial/error reply. Injected so tests can run
// the gate without a live session.
type replyFunc func(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) error

// Gate decides allow/deny for gated interactions.
type Gate struct {
	store   *storage.Store
	catalog *modules.Catalog
	reply   replyFunc
}

// New builds a gate over the given store and catalog.
func New(store *storage.Store, catalog *modules.Catalog) *Gate {
	return &Gate{
		store:   store,
		catalog: catalog,
		reply:   respond.Ephemeral,
	}
}

// Check decides whether the command owning moduleID may run for this
// interaction. On denial it sends exactly one ephemeral reply; on allow it
// sends nothing, leaving the response slot to the handler.
//
// The decision ladder, in order: outside a guild -> deny silently; no owning
// module -> allow; privileged module -> allow unconditionally (it manages the
// gate and must never lock itself out); otherwise membership in the guild's
// enabled set. A storage failure is reported as an explicit error reply,
// never read as enabled or disabled.
func (g *Gate) Check(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, moduleID string) bool {
	if i.GuildID == "" {
		return false
	}
	if moduleID == "" {
		return true
	}
	if moduleID == modules.Privileged {
		return true
	}

	enabled, err := g.store.EnabledModules(ctx, i.GuildID)
	if err != nil {
		log.Error().Err(err).
			Str("guild", i.GuildID).
			Str("module", moduleID).
			Msg("enablement lookup failed")
		g.send(s, i, "Something went wrong while checking module settings. Please try again.")
		return false
	}

	for _, id := range enabled {
		if id == moduleID {
			return true
		}
	}

	name := modules.DisplayName(moduleID)
	g.send(s, i, fmt.Sprintf(
		"The `%s` module is disabled on this server.\nAn administrator can turn it back on with `/modules enable %s`.",
		name, name,
	))
	return false
}

// send delivers the ephemeral reply, swallowing delivery errors: if the
// interaction already expired the denial is moot, and the failure must not
// take the event task down.
func (g *Gate) send(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	if err := g.reply(s, i, msg); err != nil {
		log.Warn().Err(err).Str("guild", i.GuildID).Msg("gate reply not delivered")
	}
}
