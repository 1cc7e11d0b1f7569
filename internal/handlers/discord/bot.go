package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/KirkDiggler/guessyear/internal/common/uuid"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Bot represents the Discord bot instance
type Bot struct {
	session       *discordgo.Session
	commands      map[string]CommandHandler
	commandIDs    map[string]string // Maps command name to command ID
	responder     *Responder
	uuidGenerator uuid.UUID
	logger        *zap.Logger
	config        *Config

	// Handlers run on their own goroutines, Stop waits for the ones in flight
	mu       sync.RWMutex
	stopped  bool
	inflight sync.WaitGroup
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Responder answers every command
	Responder *Responder

	// Optional, defaulted when nil
	UUIDGenerator uuid.UUID
	Logger        *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Responder == nil {
		return nil, errors.New("responder cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Plain messages carry the free-text guesses
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	bot := &Bot{
		session:       session,
		commands:      make(map[string]CommandHandler),
		commandIDs:    make(map[string]string),
		responder:     cfg.Responder,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
		config:        cfg,
	}

	if bot.uuidGenerator == nil {
		bot.uuidGenerator = uuid.New()
	}

	if bot.logger == nil {
		bot.logger = zap.NewNop()
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessage)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range NewCommands(b.responder) {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.logger.Info("bot is now running")
	return nil
}

// Stop removes the registered commands, closes the Discord connection and
// waits for handlers that are still running. Events arriving after Stop are
// dropped.
func (b *Bot) Stop() error {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()

	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command",
				zap.String("command", cmdName),
				zap.String("command_id", cmdID),
				zap.Error(err),
			)
		} else {
			b.logger.Debug("deleted command", zap.String("command", cmdName), zap.String("command_id", cmdID))
		}
	}

	err := b.session.Close()
	b.inflight.Wait()
	return err
}

// track registers a running handler. It reports false once Stop has begun.
func (b *Bot) track() (func(), bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.stopped {
		return nil, false
	}

	b.inflight.Add(1)
	return b.inflight.Done, true
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	scope := "global"
	if b.config.GuildID != "" {
		scope = b.config.GuildID
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("scope", scope),
	)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles slash commands
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	h, ok := b.commands[data.Name]
	if !ok {
		return
	}

	done, ok := b.track()
	if !ok {
		return
	}
	defer done()

	req := interactionRequest(i)
	logger := b.logger.With(
		zap.String("interaction_id", b.uuidGenerator.NewUUID()),
		zap.String("command", data.Name),
		zap.String("player_id", req.PlayerID),
	)

	reply, err := h.Reply(context.Background(), req, data)
	if err != nil {
		logger.Error("failed to handle command", zap.Error(err))
		reply = &Reply{Text: "Something went wrong! Try again later.", IsError: true, Ephemeral: true}
	}

	response, closeFiles := renderInteractionResponse(reply)
	defer closeFiles()

	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		logger.Error("failed to respond to interaction", zap.Error(err))
	}
}

// handleMessage handles free-text guesses and everything else players type
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	if !answersMessage(m.GuildID, m.Content) {
		return
	}

	done, ok := b.track()
	if !ok {
		return
	}
	defer done()

	req := &Request{
		PlayerID:   m.Author.ID,
		PlayerName: m.Author.Username,
	}
	logger := b.logger.With(
		zap.String("interaction_id", b.uuidGenerator.NewUUID()),
		zap.String("channel_id", m.ChannelID),
		zap.String("player_id", req.PlayerID),
	)

	reply, err := b.responder.Text(context.Background(), req, m.Content)
	if err != nil {
		logger.Error("failed to handle message", zap.Error(err))
		return
	}

	send, closeFiles := renderMessageSend(reply, m.Reference())
	defer closeFiles()

	if _, err := s.ChannelMessageSendComplex(m.ChannelID, send); err != nil {
		logger.Error("failed to send reply", zap.Error(err))
	}
}

// answersMessage reports whether a message gets a reply. In guild channels
// only guesses are answered, everything else is regular chat.
func answersMessage(guildID, content string) bool {
	return guildID == "" || isDigits(strings.TrimSpace(content))
}

// interactionRequest identifies the user behind an interaction.
// Member is set in guilds, User in direct messages.
func interactionRequest(i *discordgo.InteractionCreate) *Request {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.User.Username
		if i.Member.Nick != "" {
			name = i.Member.Nick
		}
		return &Request{PlayerID: i.Member.User.ID, PlayerName: name}
	}

	if i.User != nil {
		return &Request{PlayerID: i.User.ID, PlayerName: i.User.Username}
	}

	return &Request{}
}
