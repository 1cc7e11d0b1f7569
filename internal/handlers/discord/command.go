package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Reply builds the answer to an invocation of the command
	Reply(ctx context.Context, req *Request, data discordgo.ApplicationCommandInteractionData) (*Reply, error)
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// replyFunc answers a command through the Responder
type replyFunc func(ctx context.Context, req *Request, data discordgo.ApplicationCommandInteractionData) (*Reply, error)

// ResponderCommand is a slash command answered by the Responder
type ResponderCommand struct {
	BaseCommand
	reply replyFunc
}

// Reply builds the answer to an invocation of the command
func (c *ResponderCommand) Reply(ctx context.Context, req *Request, data discordgo.ApplicationCommandInteractionData) (*Reply, error) {
	return c.reply(ctx, req, data)
}

// NewCommands returns the slash commands of the game
func NewCommands(r *Responder) []CommandHandler {
	simple := func(fn func(context.Context, *Request) (*Reply, error)) replyFunc {
		return func(ctx context.Context, req *Request, _ discordgo.ApplicationCommandInteractionData) (*Reply, error) {
			return fn(ctx, req)
		}
	}

	minYear := float64(r.minYear)

	return []CommandHandler{
		&ResponderCommand{
			BaseCommand: BaseCommand{Name: "start", Description: "Meet the bot and create your player"},
			reply:       simple(r.Start),
		},
		&ResponderCommand{
			BaseCommand: BaseCommand{Name: "help", Description: "Rules of the game and the list of commands"},
			reply:       simple(r.Help),
		},
		&ResponderCommand{
			BaseCommand: BaseCommand{Name: "play", Description: "Get a historical event to date"},
			reply:       simple(r.Play),
		},
		&ResponderCommand{
			BaseCommand: BaseCommand{Name: "sur", Description: "Give up and see the answer"},
			reply:       simple(r.Surrender),
		},
		&ResponderCommand{
			BaseCommand: BaseCommand{Name: "cancel", Description: "Leave the current round"},
			reply:       simple(r.Cancel),
		},
		&ResponderCommand{
			BaseCommand: BaseCommand{Name: "stat", Description: "Show your statistics"},
			reply:       simple(r.Stat),
		},
		&ResponderCommand{
			BaseCommand: BaseCommand{
				Name:        "guess",
				Description: "Guess the year of the current event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "year",
						Description: fmt.Sprintf("A year from %d to %d", r.minYear, r.maxYear),
						Required:    true,
						MinValue:    &minYear,
						MaxValue:    float64(r.maxYear),
					},
				},
			},
			reply: func(ctx context.Context, req *Request, data discordgo.ApplicationCommandInteractionData) (*Reply, error) {
				for _, opt := range data.Options {
					if opt.Name == "year" {
						return r.Guess(ctx, req, int(opt.IntValue()))
					}
				}
				// A missing year is answered like an out of range one
				return r.Guess(ctx, req, r.maxYear+1)
			},
		},
	}
}
