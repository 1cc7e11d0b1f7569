package discord

import (
	"mime"
	"path/filepath"

	"github.com/KirkDiggler/guessyear/internal/media"
	"github.com/bwmarrin/discordgo"
)

const (
	colorOK    = 0x00ff00 // Green
	colorError = 0xff0000 // Red
)

// Reply is a transport-neutral answer to a player command
type Reply struct {
	Title  string
	Text   string
	Fields []Field
	Footer string

	// Media is attached as an image when set
	Media *media.Media

	// Ephemeral replies are only shown to the player who sent the command
	Ephemeral bool

	// IsError renders the reply as an error
	IsError bool
}

// Field is a name/value pair shown under the reply text
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// renderEmbed converts the reply into a Discord embed
func renderEmbed(reply *Reply) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       reply.Title,
		Description: reply.Text,
		Color:       colorOK,
	}

	if reply.IsError {
		embed.Color = colorError
	}

	for _, f := range reply.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if reply.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: reply.Footer}
	}

	return embed
}

// renderFiles opens the reply media and points the embed image at it.
// The returned func closes the opened files and is never nil.
func renderFiles(reply *Reply, embed *discordgo.MessageEmbed) ([]*discordgo.File, func()) {
	if reply.Media == nil {
		return nil, func() {}
	}

	f, err := reply.Media.Open()
	if err != nil {
		// The file vanished after it was resolved, send the reply without it
		return nil, func() {}
	}

	embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + reply.Media.Name}

	files := []*discordgo.File{
		{
			Name:        reply.Media.Name,
			ContentType: mime.TypeByExtension(filepath.Ext(reply.Media.Name)),
			Reader:      f,
		},
	}

	return files, func() { _ = f.Close() }
}

// renderInteractionResponse renders the reply to a slash command
func renderInteractionResponse(reply *Reply) (*discordgo.InteractionResponse, func()) {
	embed := renderEmbed(reply)
	files, closeFiles := renderFiles(reply, embed)

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files:  files,
	}

	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, closeFiles
}

// renderMessageSend renders the reply to a plain chat message.
// Plain messages cannot be ephemeral, so the reply references the original message instead.
func renderMessageSend(reply *Reply, reference *discordgo.MessageReference) (*discordgo.MessageSend, func()) {
	embed := renderEmbed(reply)
	files, closeFiles := renderFiles(reply, embed)

	return &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Files:     files,
		Reference: reference,
	}, closeFiles
}
