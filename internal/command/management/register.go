package management

import (
	"guildkeeper/internal/command"
	"guildkeeper/internal/middleware"
)

func init() {
	command.Register(&ModulesCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
	command.Register(&AdminCommand{},
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
