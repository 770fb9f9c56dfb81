package management

import (
	"context"
	"fmt"
	"sort"

	"guildkeeper/internal/command"
	"guildkeeper/internal/modules"
	"guildkeeper/internal/respond"

	"github.com/bwmarrin/discordgo"
)

// ModulesCommand lists, enables, and disables capability modules per guild.
// It belongs to the privileged module so it can never gate itself off.
type ModulesCommand struct{}

func (c *ModulesCommand) Name() string { return "modules" }
func (c *ModulesCommand) Description() string { return "List, enable, or disable feature modules" }
func (c *ModulesCommand) Module() string { return modules.Privileged }
func (c *ModulesCommand) Category() string { return "⚙️ Management" }
func (c *ModulesCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *ModulesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	nameOption := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "name",
			Description:  desc,
			Required:     true,
			Autocomplete: true,
		}
	}
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		Type:                     discordgo.ChatApplicationCommand,
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show every module and its status on this server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Enable a module on this server",
				Options:     []*discordgo.ApplicationCommandOption{nameOption("Module to enable (e.g. 'moderation')")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Disable a module on this server",
				Options:     []*discordgo.ApplicationCommandOption{nameOption("Module to disable (e.g. 'youtube')")},
			},
		},
	}
}

func (c *ModulesCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	opts := sc.Event.ApplicationCommandData().Options
	if len(opts) == 0 {
		return respond.Ephemeral(sc.Session, sc.Event, "Missing subcommand.")
	}

	switch sub := opts[0]; sub.Name {
	case "list":
		return c.runList(ctx, sc)
	case "enable":
		return c.runToggle(ctx, sc, sub.Options[0].StringValue(), true)
	case "disable":
		return c.runToggle(ctx, sc, sub.Options[0].StringValue(), false)
	default:
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf("Unknown subcommand `%s`.", sub.Name))
	}
}

func (c *ModulesCommand) runList(ctx context.Context, sc *command.SlashContext) error {
	enabled, err := sc.Store.EnabledModules(ctx, sc.Event.GuildID)
	if err != nil {
		return fmt.Errorf("list modules: %w", err)
	}
	enabledSet := make(map[string]struct{}, len(enabled))
	for _, id := range enabled {
		enabledSet[id] = struct{}{}
	}

	embed := &discordgo.MessageEmbed{
		Title: "Feature Modules",
		Color: respond.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf(":white_check_mark: %s", modules.DisplayName(modules.Privileged)),
				Value: "Always active",
			},
		},
	}

	toggleable := sc.Catalog.Toggleable()
	sort.Strings(toggleable)
	for _, id := range toggleable {
		status, emoji := "Disabled", ":x:"
		if _, ok := enabledSet[id]; ok {
			status, emoji = "Enabled", ":white_check_mark:"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", emoji, modules.DisplayName(id)),
			Value: status,
		})
	}
	return respond.EmbedEphemeral(sc.Session, sc.Event, embed)
}

func (c *ModulesCommand) runToggle(ctx context.Context, sc *command.SlashContext, short string, enable bool) error {
	id := modules.Qualify(short)
	if id == modules.Privileged {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf(
			"The `%s` module cannot be toggled.", modules.DisplayName(modules.Privileged)))
	}
	if !sc.Catalog.IsValid(id) {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf(
			"No such module: `%s`. Use `/modules list` to see what is available.", short))
	}

	if err := sc.Store.SetModuleEnabled(ctx, sc.Event.GuildID, id, enable); err != nil {
		return fmt.Errorf("toggle module: %w", err)
	}

	name := modules.DisplayName(id)
	if enable {
		return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf(":white_check_mark: Module `%s` enabled.", name))
	}
	return respond.Ephemeral(sc.Session, sc.Event, fmt.Sprintf(":x: Module `%s` disabled.", name))
}

// Autocomplete offers toggleable module names matching the user's partial
// input. The privileged module is never suggested.
func (c *ModulesCommand) Autocomplete(ctx context.Context, ac *command.AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	opts := ac.Event.ApplicationCommandData().Options
	if len(opts) == 0 || len(opts[0].Options) == 0 {
		return nil, nil
	}
	partial := opts[0].Options[0].StringValue()

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range ac.Catalog.Suggest(partial, 25) {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return choices, nil
}
