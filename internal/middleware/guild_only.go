package middleware

import (
	"context"

	"guildkeeper/internal/command"
	"guildkeeper/pkg/cmd"
)

// WithGuildOnly drops invocations that arrive outside a guild context. The
// drop is silent: the bot only operates inside servers.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if sc, ok := inv.Data.(*command.SlashContext); ok && sc.Event.GuildID == "" {
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}
