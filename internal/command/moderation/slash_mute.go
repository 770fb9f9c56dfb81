package moderation

import (
	"context"
	"errors"
	"fmt"

	"guildkeeper/internal/command"
	"guildkeeper/internal/respond"
	"guildkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type MuteCommand struct{}

func (c *MuteCommand) Name() string { return "mute" }
func (c *MuteCommand) Description() string { return "Mute a user via the configured mute role" }
func (c *MuteCommand) Module() string { return moduleID }
func (c *MuteCommand) Category() string { return "🔨 Moderation" }
func (c *MuteCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *MuteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionUser, Name: "user",
				Description: "Who to mute", Required: true,
			},
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "reason",
				Description: "Why", Required: true,
			},
		},
	}
}

func (c *MuteCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	s, e := sc.Session, sc.Event
	opts := e.ApplicationCommandData().Options
	user := opts[0].UserValue(s)
	reason := opts[1].StringValue()

	roleID, msg, err := muteRole(ctx, sc)
	if err != nil {
		return err
	}
	if msg != "" {
		return respond.Ephemeral(s, e, msg)
	}

	if err := s.GuildMemberRoleAdd(e.GuildID, user.ID, roleID); err != nil {
		return respond.Ephemeral(s, e, "I am not allowed to manage that role.")
	}
	return respond.Public(s, e, fmt.Sprintf("<@%s> has been muted. Reason: %s", user.ID, reason))
}

// muteRole resolves the configured mute role. A non-empty msg means the
// command should stop with that user-facing explanation.
func muteRole(ctx context.Context, sc *command.SlashContext) (roleID, msg string, err error) {
	cfg, err := sc.Store.GuildConfig(ctx, sc.Event.GuildID)
	if errors.Is(err, storage.ErrGuildNotRegistered) {
		return "", "This server is not registered yet. Try again in a moment.", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("load guild config: %w", err)
	}
	if cfg.MuteRoleID == "" {
		return "", "No mute role is configured. Use `/admin set-role` first.", nil
	}
	if _, err := sc.Session.State.Role(sc.Event.GuildID, cfg.MuteRoleID); err != nil {
		return "", "The configured mute role no longer exists. Set a new one with `/admin set-role`.", nil
	}
	return cfg.MuteRoleID, "", nil
}
