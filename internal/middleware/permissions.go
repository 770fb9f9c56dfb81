package middleware

import (
	"context"
	"fmt"
	"strings"

	"guildkeeper/internal/command"
	"guildkeeper/internal/respond"
	"guildkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

var permissionNames = map[int64]string{
	discordgo.PermissionAdministrator:   "Administrator",
	discordgo.PermissionManageGuild:     "Manage Server",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionModerateMembers: "Moderate Members",
}

// WithUserPermissionCheck blocks commands whose metadata requires permissions
// the invoking member lacks. Administrators and the configured developer
// always pass. A command with no required permissions is open to everyone.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			sc, ok := inv.Data.(*command.SlashContext)
			if !ok {
				return c.Run(ctx, inv)
			}
			e := sc.Event
			if e.GuildID == "" || e.Member == nil || e.Member.User == nil {
				return c.Run(ctx, inv)
			}

			meta, ok := cmd.Root(c).(command.Meta)
			if !ok {
				return c.Run(ctx, inv)
			}
			required := meta.UserPermissions()
			if len(required) == 0 {
				return c.Run(ctx, inv)
			}

			memberPerms, err := sc.Session.UserChannelPermissions(e.Member.User.ID, e.ChannelID)
			if err != nil {
				return fmt.Errorf("resolve member permissions: %w", err)
			}
			if memberPerms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}
			if sc.DeveloperID != "" && e.Member.User.ID == sc.DeveloperID {
				return c.Run(ctx, inv)
			}

			for _, p := range required {
				if memberPerms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			names := make([]string, 0, len(required))
			for _, p := range required {
				name := permissionNames[p]
				if name == "" {
					name = fmt.Sprintf("0x%x", p)
				}
				names = append(names, name)
			}
			return respond.Ephemeral(sc.Session, e, fmt.Sprintf(
				"You need at least one of the following permissions to run this command:\n`%s`",
				strings.Join(names, "`, `"),
			))
		})
	}
}
