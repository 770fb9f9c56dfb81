// Package respond holds the interaction and channel reply helpers shared by
// commands, middleware, and the gate. Kept separate from the bot package so
// nothing that replies has to import the event loop.
package respond

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is the default accent used by bot embeds.
const EmbedColor = 0x3498db

// Ephemeral sends a private text reply to an interaction.
func Ephemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// Public sends a public text reply to an interaction.
func Public(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// Embed sends a public embed reply to an interaction.
func Embed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// EmbedEphemeral sends a private embed reply to an interaction.
func EmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// DeferredEphemeral acknowledges an interaction privately without an
// immediate reply; follow up with FollowupEphemeral.
func DeferredEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

// FollowupEphemeral sends a private followup after a deferred response.
func FollowupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: content})
	return err
}

// EphemeralOrFollowup reports a failure on an interaction whose response slot
// may already be taken: a direct ephemeral reply first, then a followup when
// the interaction was deferred or already answered.
func EphemeralOrFollowup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := Ephemeral(s, i, content); err != nil {
		_ = FollowupEphemeral(s, i, content)
	}
}

// Autocomplete answers an autocomplete interaction with the given choices.
func Autocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// Message sends a plain text message to a channel.
func Message(s *discordgo.Session, channelID, content string) (*discordgo.Message, error) {
	return s.ChannelMessageSend(channelID, content)
}

// MessageEmbed sends an embed to a channel.
func MessageEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return s.ChannelMessageSendEmbed(channelID, embed)
}

// DeleteAfter schedules a message deletion. Errors are ignored; the message
// may already be gone.
func DeleteAfter(s *discordgo.Session, channelID, messageID string, d time.Duration) {
	time.AfterFunc(d, func() {
		_ = s.ChannelMessageDelete(channelID, messageID)
	})
}
