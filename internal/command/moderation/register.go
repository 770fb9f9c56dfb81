package moderation

import (
	"guildkeeper/internal/command"
	"guildkeeper/internal/middleware"
)

func init() {
	for _, c := range []command.DiscordCommand{
		&WarnCommand{},
		&MuteCommand{},
		&UnmuteCommand{},
	} {
		command.Register(c,
			middleware.WithUserPermissionCheck(),
			middleware.WithGuildOnly(),
			middleware.WithCommandLogger(),
		)
	}
}
