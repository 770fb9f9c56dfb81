package middleware

import (
	"context"
	"time"

	"guildkeeper/internal/command"
	"guildkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// WithCommandLogger logs every slash invocation with its outcome and timing.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			sc, ok := inv.Data.(*command.SlashContext)
			if !ok {
				return err
			}
			user := resolveUser(sc.Event)
			evt := log.Info()
			if err != nil {
				evt = log.Error().Err(err)
			}
			evt.
				Str("command", c.Name()).
				Str("guild", sc.Event.GuildID).
				Str("user", user.Username).
				Dur("took", time.Since(start)).
				Msg("command executed")
			return err
		})
	}
}

// resolveUser pulls the invoking user out of an interaction, whichever field
// the platform populated.
func resolveUser(e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "unknown"}
}
