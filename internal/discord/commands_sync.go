package discord

import (
	"fmt"
	"time"

	"guildkeeper/internal/command"
	"guildkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// createInterval spaces out command creation calls to stay inside the
// application-command rate limit.
const createInterval = time.Second / 20

// syncCommands reconciles the guild's registered slash commands with the
// registry: obsolete commands are deleted, everything else is (re)created.
// Creating a command with an existing name overwrites it, so no diffing
// beyond names is needed.
func (b *Bot) syncCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return fmt.Errorf("resolve application id: %w", err)
		}
		appID = user.ID
	}

	wanted := make(map[string]*discordgo.ApplicationCommand)
	for _, c := range cmd.DefaultRegistry.All() {
		sp, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		if def := sp.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			wanted[def.Name] = def
		}
	}

	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("list registered commands: %w", err)
	}
	for _, old := range existing {
		if _, ok := wanted[old.Name]; ok {
			continue
		}
		log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
		if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			log.Error().Err(err).Str("guild", guildID).Str("command", old.Name).Msg("command delete failed")
		}
	}

	ticker := time.NewTicker(createInterval)
	defer ticker.Stop()
	for name, def := range wanted {
		<-ticker.C
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Error().Err(err).Str("guild", guildID).Str("command", name).Msg("command create failed")
		}
	}
	return nil
}
