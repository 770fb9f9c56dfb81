// Package server is the toggleable server-info module.
package server

import (
	"context"
	"errors"
	"fmt"

	"guildkeeper/internal/command"
	"guildkeeper/internal/middleware"
	"guildkeeper/internal/respond"
	"guildkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type ServerCommand struct{}

func (c *ServerCommand) Name() string { return "server" }
func (c *ServerCommand) Description() string { return "Show server information" }
func (c *ServerCommand) Module() string { return "command.server_module" }
func (c *ServerCommand) Category() string { return "ℹ️ Info" }
func (c *ServerCommand) UserPermissions() []int64 { return nil }

func (c *ServerCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ServerCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	s, e := sc.Session, sc.Event

	cfg, err := sc.Store.GuildConfig(ctx, e.GuildID)
	if errors.Is(err, storage.ErrGuildNotRegistered) {
		return respond.Ephemeral(s, e, "This server is not registered yet.")
	}
	if err != nil {
		return fmt.Errorf("load guild config: %w", err)
	}

	description := cfg.Description
	if description == "" {
		description = "No description set."
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Server Information: %s", cfg.Name),
		Description: description,
		Color:       respond.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Host", Value: orNA(cfg.Host), Inline: true},
			{Name: "CPU", Value: orNA(cfg.CPU), Inline: true},
			{Name: "RAM", Value: orNA(cfg.RAM), Inline: true},
		},
	}
	if g, err := s.State.Guild(e.GuildID); err == nil && g.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: g.IconURL("")}
	}

	return respond.Embed(s, e, embed)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func init() {
	command.Register(&ServerCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
