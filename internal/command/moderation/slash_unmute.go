package moderation

import (
	"context"
	"fmt"

	"guildkeeper/internal/command"
	"guildkeeper/internal/respond"

	"github.com/bwmarrin/discordgo"
)

type UnmuteCommand struct{}

func (c *UnmuteCommand) Name() string { return "unmute" }
func (c *UnmuteCommand) Description() string { return "Lift a user's mute" }
func (c *UnmuteCommand) Module() string { return moduleID }
func (c *UnmuteCommand) Category() string { return "🔨 Moderation" }
func (c *UnmuteCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *UnmuteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionUser, Name: "user",
				Description: "Who to unmute", Required: true,
			},
		},
	}
}

func (c *UnmuteCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	s, e := sc.Session, sc.Event
	user := e.ApplicationCommandData().Options[0].UserValue(s)

	roleID, msg, err := muteRole(ctx, sc)
	if err != nil {
		return err
	}
	if msg != "" {
		return respond.Ephemeral(s, e, msg)
	}

	member, err := s.GuildMember(e.GuildID, user.ID)
	if err != nil {
		return respond.Ephemeral(s, e, "Could not look up that member.")
	}
	muted := false
	for _, r := range member.Roles {
		if r == roleID {
			muted = true
			break
		}
	}
	if !muted {
		return respond.Ephemeral(s, e, "That user is not muted.")
	}

	if err := s.GuildMemberRoleRemove(e.GuildID, user.ID, roleID); err != nil {
		return respond.Ephemeral(s, e, "I am not allowed to manage that role.")
	}
	return respond.Public(s, e, fmt.Sprintf("<@%s> has been unmuted.", user.ID))
}
