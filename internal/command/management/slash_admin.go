package management

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"guildkeeper/internal/command"
	"guildkeeper/internal/modules"
	"guildkeeper/internal/respond"
	"guildkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// AdminCommand is the /admin group: bad-word list management, channel/role
// configuration, and post templates. Always-on alongside /modules.
type AdminCommand struct{}

func (c *AdminCommand) Name() string { return "admin" }
func (c *AdminCommand) Description() string { return "Server administration commands" }
func (c *AdminCommand) Module() string { return modules.Privileged }
func (c *AdminCommand) Category() string { return "⚙️ Management" }
func (c *AdminCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *AdminCommand) SlashDefinition() *discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	word := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "word",
		Description: "The word",
		Required:    true,
	}
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "add-bad-word",
				Description: "Add a word to the banned word list",
				Options:     []*discordgo.ApplicationCommandOption{word},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "remove-bad-word",
				Description: "Remove a word from the banned word list",
				Options:     []*discordgo.ApplicationCommandOption{word},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list-bad-words",
				Description: "Show the banned word list",
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-channel",
				Description: "Configure a special channel",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "type",
						Description: "Channel purpose", Required: true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Public video posts", Value: "video-public"},
						},
					},
					{
						Type: discordgo.ApplicationCommandOptionChannel, Name: "channel",
						Description: "The channel", Required: true,
					},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-role",
				Description: "Configure a special role",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "type",
						Description: "Role purpose", Required: true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Mute role", Value: "mute"},
						},
					},
					{
						Type: discordgo.ApplicationCommandOptionRole, Name: "role",
						Description: "The role", Required: true,
					},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-info",
				Description: "Set a server info field shown by /server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "field",
						Description: "Which field", Required: true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Description", Value: "description"},
							{Name: "Host", Value: "host"},
						},
					},
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "value",
						Description: "The new value", Required: true,
					},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "template-create",
				Description: "Create a post template",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Template name", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Embed title format ({title}, {link}, {description}, {author})", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Embed description format", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "color", Description: "Hex color, e.g. #FF0000"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "footer", Description: "Embed footer format"},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "template-delete",
				Description: "Delete a post template",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Template name", Required: true},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "template-list",
				Description: "List post templates",
			},
		},
	}
}

func (c *AdminCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	opts := sc.Event.ApplicationCommandData().Options
	if len(opts) == 0 {
		return respond.Ephemeral(sc.Session, sc.Event, "Missing subcommand.")
	}
	sub := opts[0]
	args := optionMap(sub.Options)

	switch sub.Name {
	case "add-bad-word":
		return c.runAddBadWord(ctx, sc, args["word"].StringValue())
	case "remove-bad-word":
		return c.runRemoveBadWord(ctx, sc, args["word"].StringValue())
	case "list-bad-words":
		return c.runListBadWords(ctx, sc)
	case "set-channel":
		return c.runSetChannel(ctx, sc, args)
	case "set-role":
		return c.runSetRole(ctx, sc, args)
	case "set-info":
		return c.runSetInfo(ctx, sc, args)
	case "template-create":
		return c.runTemplateCreate(ctx, sc, args)
	case "template-delete":
		return c.runTemplateDelete(ctx, sc, args["name"].StringValue())
	case "template-list":
		return c.runTemplateList(ctx, sc)
	default:
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Unknown subcommand `%s`.", sub.Name))
	}
}

func (c *AdminCommand) runAddBadWord(ctx context.Context, sc *command.SlashContext, word string) error {
	added, err := sc.Store.AddBadWord(ctx, sc.Event.GuildID, word)
	if err != nil {
		return fmt.Errorf("add bad word: %w", err)
	}
	word = strings.ToLower(word)
	if !added {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("`%s` is already on the list.", word))
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("`%s` added to the banned word list.", word))
}

func (c *AdminCommand) runRemoveBadWord(ctx context.Context, sc *command.SlashContext, word string) error {
	removed, err := sc.Store.RemoveBadWord(ctx, sc.Event.GuildID, word)
	if err != nil {
		return fmt.Errorf("remove bad word: %w", err)
	}
	word = strings.ToLower(word)
	if !removed {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("`%s` is not on the list.", word))
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("`%s` removed from the banned word list.", word))
}

func (c *AdminCommand) runListBadWords(ctx context.Context, sc *command.SlashContext) error {
	words, err := sc.Store.BadWords(ctx, sc.Event.GuildID)
	if err != nil {
		return fmt.Errorf("list bad words: %w", err)
	}
	if len(words) == 0 {
		return respond.Ephemeral(sc.Session, sc.Event, "The banned word list is empty.")
	}
	return respond.Ephemeral(sc.Session, sc.Event,
		fmt.Sprintf("**Banned words:**\n```\n%s\n```", strings.Join(words, "\n")))
}

func (c *AdminCommand) runSetChannel(ctx context.Context, sc *command.SlashContext, args map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	kind := strings.ToLower(args["type"].StringValue())
	if kind != "video-public" {
		return respond.Ephemeral(sc.Session, sc.Event, "Unknown channel type. Accepted: `video-public`.")
	}
	channel := args["channel"].ChannelValue(sc.Session)
	if channel == nil {
		return respond.Ephemeral(sc.Session, sc.Event, "Could not resolve that channel. Pass a channel mention or pick one from the list.")
	}
	if err := sc.Store.UpdateGuildConfig(ctx, sc.Event.GuildID, "video_channel_id", channel.ID); err != nil {
		if errors.Is(err, storage.ErrGuildNotRegistered) {
			return respond.Ephemeral(sc.Session, sc.Event, "This server is not registered yet. Try again in a moment.")
		}
		return fmt.Errorf("set channel: %w", err)
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Public video channel set to <#%s>.", channel.ID))
}

func (c *AdminCommand) runSetRole(ctx context.Context, sc *command.SlashContext, args map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	kind := strings.ToLower(args["type"].StringValue())
	if kind != "mute" {
		return respond.Ephemeral(sc.Session, sc.Event, "Unknown role type. Accepted: `mute`.")
	}
	role := args["role"].RoleValue(sc.Session, sc.Event.GuildID)
	if role == nil {
		return respond.Ephemeral(sc.Session, sc.Event, "Could not resolve that role. Pass a role mention or pick one from the list.")
	}
	if err := sc.Store.UpdateGuildConfig(ctx, sc.Event.GuildID, "mute_role_id", role.ID); err != nil {
		if errors.Is(err, storage.ErrGuildNotRegistered) {
			return respond.Ephemeral(sc.Session, sc.Event, "This server is not registered yet. Try again in a moment.")
		}
		return fmt.Errorf("set role: %w", err)
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Mute role set to <@&%s>.", role.ID))
}

var infoColumns = map[string]string{
	"description": "server_description",
	"host":        "server_host",
}

func (c *AdminCommand) runSetInfo(ctx context.Context, sc *command.SlashContext, args map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	field := strings.ToLower(args["field"].StringValue())
	column, ok := infoColumns[field]
	if !ok {
		return respond.Ephemeral(sc.Session, sc.Event, "Unknown field. Accepted: `description`, `host`.")
	}
	if err := sc.Store.UpdateGuildConfig(ctx, sc.Event.GuildID, column, args["value"].StringValue()); err != nil {
		if errors.Is(err, storage.ErrGuildNotRegistered) {
			return respond.Ephemeral(sc.Session, sc.Event, "This server is not registered yet. Try again in a moment.")
		}
		return fmt.Errorf("set info field: %w", err)
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Server %s updated.", field))
}

func (c *AdminCommand) runTemplateCreate(ctx context.Context, sc *command.SlashContext, args map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	t := &storage.PostTemplate{
		GuildID:     sc.Event.GuildID,
		Name:        args["name"].StringValue(),
		Title:       args["title"].StringValue(),
		Description: args["description"].StringValue(),
		Color:       "#FFFFFF",
	}
	if opt, ok := args["color"]; ok {
		t.Color = opt.StringValue()
	}
	if opt, ok := args["footer"]; ok {
		t.Footer = opt.StringValue()
	}

	created, err := sc.Store.CreateTemplate(ctx, t)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	if !created {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("A template named `%s` already exists.", t.Name))
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Template `%s` created.", t.Name))
}

func (c *AdminCommand) runTemplateDelete(ctx context.Context, sc *command.SlashContext, name string) error {
	deleted, err := sc.Store.DeleteTemplate(ctx, sc.Event.GuildID, name)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if !deleted {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("No template named `%s`.", name))
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Template `%s` deleted.", name))
}

func (c *AdminCommand) runTemplateList(ctx context.Context, sc *command.SlashContext) error {
	list, err := sc.Store.Templates(ctx, sc.Event.GuildID)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}
	if len(list) == 0 {
		return respond.Ephemeral(sc.Session, sc.Event, "No templates created yet.")
	}
	embed := &discordgo.MessageEmbed{Title: "Post Templates", Color: respond.EmbedColor}
	for _, t := range list {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  t.Name,
			Value: fmt.Sprintf("**Title:** %s", t.Title),
		})
	}
	return respond.EmbedEphemeral(sc.Session, sc.Event, embed)
}

// optionMap indexes subcommand options by name.
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}
