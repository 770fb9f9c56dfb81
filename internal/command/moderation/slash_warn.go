// Package moderation is the toggleable moderation module: warn, mute, and
// unmute. The passive bad-word filter lives with the bot's message handler;
// its word list is managed through /admin.
package moderation

import (
	"context"
	"fmt"

	"guildkeeper/internal/command"
	"guildkeeper/internal/respond"

	"github.com/bwmarrin/discordgo"
)

const moduleID = "command.moderation_module"

type WarnCommand struct{}

func (c *WarnCommand) Name() string { return "warn" }
func (c *WarnCommand) Description() string { return "Warn a user" }
func (c *WarnCommand) Module() string { return moduleID }
func (c *WarnCommand) Category() string { return "🔨 Moderation" }
func (c *WarnCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *WarnCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionUser, Name: "user",
				Description: "Who to warn", Required: true,
			},
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "reason",
				Description: "Why", Required: true,
			},
		},
	}
}

func (c *WarnCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	s, e := sc.Session, sc.Event
	opts := e.ApplicationCommandData().Options
	user := opts[0].UserValue(s)
	reason := opts[1].StringValue()

	if err := respond.Ephemeral(s, e, fmt.Sprintf("<@%s> has been warned. Reason: %s", user.ID, reason)); err != nil {
		return err
	}

	guildName := e.GuildID
	if g, err := s.State.Guild(e.GuildID); err == nil {
		guildName = g.Name
	}

	// DM is best effort; many users block them.
	dm, err := s.UserChannelCreate(user.ID)
	if err == nil {
		_, err = s.ChannelMessageSend(dm.ID, fmt.Sprintf(
			"You received a warning on **%s**. Reason: **%s**", guildName, reason))
	}
	if err != nil {
		return respond.FollowupEphemeral(s, e, "The user could not be notified by direct message.")
	}
	return nil
}
