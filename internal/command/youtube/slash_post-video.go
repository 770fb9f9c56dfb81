package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"guildkeeper/internal/command"
	"guildkeeper/internal/middleware"
	"guildkeeper/internal/respond"
	"guildkeeper/internal/storage"
	"guildkeeper/internal/templates"

	"github.com/bwmarrin/discordgo"
	yt "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"
)

const defaultEmbedColor = 0xe62117 // YouTube red

// PostVideoCommand posts a video embed to the guild's configured channel. The
// reply and send functions are injected so tests can run it without a live
// session.
type PostVideoCommand struct {
	ack        func(s *discordgo.Session, i *discordgo.InteractionCreate) error
	followup   func(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error
	post       func(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	fetchTitle func(ctx context.Context, videoID string) string
}

func newPostVideoCommand() *PostVideoCommand {
	return &PostVideoCommand{
		ack:        respond.DeferredEphemeral,
		followup:   respond.FollowupEphemeral,
		post:       respond.MessageEmbed,
		fetchTitle: lookupTitle,
	}
}

func (c *PostVideoCommand) Name() string { return "post-video" }
func (c *PostVideoCommand) Description() string { return "Post a video to the public video channel" }
func (c *PostVideoCommand) Module() string { return "command.youtube_module" }
func (c *PostVideoCommand) Category() string { return "📺 Content" }
func (c *PostVideoCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *PostVideoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "link",
				Description: "YouTube link", Required: true,
			},
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "title",
				Description: "Post title (looked up from YouTube when omitted)",
			},
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "description",
				Description: "Post description",
			},
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "template",
				Description: "Post template to use", Autocomplete: true,
			},
		},
	}
}

func (c *PostVideoCommand) Run(ctx context.Context, sc *command.SlashContext) error {
	s, e := sc.Session, sc.Event

	var link, title, description, templateName string
	for _, opt := range e.ApplicationCommandData().Options {
		switch opt.Name {
		case "link":
			link = opt.StringValue()
		case "title":
			title = opt.StringValue()
		case "description":
			description = opt.StringValue()
		case "template":
			templateName = opt.StringValue()
		}
	}

	// Everything below may take a moment (DB reads, metadata lookup).
	if err := c.ack(s, e); err != nil {
		return err
	}

	cfg, err := sc.Store.GuildConfig(ctx, e.GuildID)
	if errors.Is(err, storage.ErrGuildNotRegistered) {
		return c.followup(s, e, "This server is not registered yet.")
	}
	if err != nil {
		return fmt.Errorf("load guild config: %w", err)
	}
	if cfg.VideoChannelID == "" {
		return c.followup(s, e, "No public video channel is configured. Use `/admin set-channel` first.")
	}

	videoID := ExtractVideoID(link)
	if videoID == "" {
		return c.followup(s, e, "That does not look like a valid YouTube link.")
	}

	if title == "" {
		title = c.fetchTitle(ctx, videoID)
		if title == "" {
			return c.followup(s, e, "Could not fetch the video title; please provide the `title` option.")
		}
	}

	author := invokerName(e)
	embed, errMsg := c.buildEmbed(ctx, sc, templateName, templates.Vars{
		Title:       title,
		Link:        link,
		Description: description,
		Author:      author,
	})
	if errMsg != "" {
		return c.followup(s, e, errMsg)
	}
	embed.Image = &discordgo.MessageEmbedImage{URL: ThumbnailURL(videoID)}

	if _, err := c.post(s, cfg.VideoChannelID, embed); err != nil {
		return c.followup(s, e, "I am not allowed to post in the configured video channel.")
	}

	// Recorded only after the send succeeds, so a failed post never marks the
	// video as seen.
	firstTime, err := sc.Store.MarkVideoPosted(ctx, videoID, e.GuildID)
	if err != nil {
		return fmt.Errorf("record posted video: %w", err)
	}

	note := "Video posted."
	if !firstTime {
		note = "Video posted. Note: this video was posted to this server before."
	}
	return c.followup(s, e, note)
}

// buildEmbed renders the template when one is named, or the default red embed
// otherwise. A non-empty errMsg stops the command with that reply.
func (c *PostVideoCommand) buildEmbed(ctx context.Context, sc *command.SlashContext, templateName string, v templates.Vars) (embed *discordgo.MessageEmbed, errMsg string) {
	if templateName == "" {
		return &discordgo.MessageEmbed{
			Title:       v.Title,
			URL:         v.Link,
			Description: v.Description,
			Color:       defaultEmbedColor,
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Submitted by %s", v.Author)},
		}, ""
	}

	t, err := sc.Store.Template(ctx, sc.Event.GuildID, templateName)
	if errors.Is(err, storage.ErrTemplateNotFound) {
		return nil, fmt.Sprintf("Template `%s` not found.", templateName)
	}
	if err != nil {
		return nil, "Something went wrong while loading the template. Please try again."
	}

	color, err := templates.ParseColor(t.Color)
	if err != nil {
		color = defaultEmbedColor
	}
	embed = &discordgo.MessageEmbed{
		Title:       templates.Render(t.Title, v),
		Description: templates.Render(t.Description, v),
		Color:       color,
	}
	if t.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: templates.Render(t.Footer, v)}
	}
	return embed, ""
}

// Autocomplete offers the guild's template names matching the partial input.
func (c *PostVideoCommand) Autocomplete(ctx context.Context, ac *command.AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	var partial string
	for _, opt := range ac.Event.ApplicationCommandData().Options {
		if opt.Name == "template" && opt.Focused {
			partial = strings.ToLower(opt.StringValue())
		}
	}

	list, err := ac.Store.Templates(ctx, ac.Event.GuildID)
	if err != nil {
		return nil, err
	}
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, t := range list {
		if partial != "" && !strings.Contains(strings.ToLower(t.Name), partial) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: t.Name, Value: t.Name})
		if len(choices) >= 25 {
			break
		}
	}
	return choices, nil
}

// lookupTitle asks YouTube for the video title. Best effort; an empty string
// means the caller has to supply one.
func lookupTitle(ctx context.Context, videoID string) string {
	client := yt.Client{}
	video, err := client.GetVideoContext(ctx, videoID)
	if err != nil {
		log.Warn().Err(err).Str("video", videoID).Msg("video metadata lookup failed")
		return ""
	}
	return video.Title
}

func invokerName(e *discordgo.InteractionCreate) string {
	if e.Member != nil && e.Member.Nick != "" {
		return e.Member.Nick
	}
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User.Username
	}
	if e.User != nil {
		return e.User.Username
	}
	return "unknown"
}

func init() {
	command.Register(newPostVideoCommand(),
		middleware.WithUserPermissionCheck(),
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
