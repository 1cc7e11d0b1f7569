package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/guessyear/internal/media"
	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/KirkDiggler/guessyear/internal/services/game"
	"github.com/KirkDiggler/guessyear/internal/services/messaging"
	"go.uber.org/zap"
)

// Request identifies who sent a command
type Request struct {
	PlayerID   string
	PlayerName string
}

// ResponderConfig holds the dependencies of a Responder
type ResponderConfig struct {
	GameService      game.Service
	MessagingService messaging.Service

	// Media resolves event images, nil disables attachments
	Media *media.Resolver

	// Accepted guess range, inclusive
	MinYear int
	MaxYear int

	Logger *zap.Logger
}

// Responder turns player commands into replies without touching Discord
type Responder struct {
	gameService      game.Service
	messagingService messaging.Service
	media            *media.Resolver
	minYear          int
	maxYear          int
	logger           *zap.Logger
}

// NewResponder creates a new Responder
func NewResponder(cfg *ResponderConfig) (*Responder, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.MinYear > cfg.MaxYear {
		return nil, fmt.Errorf("min year %d is greater than max year %d", cfg.MinYear, cfg.MaxYear)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Responder{
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		media:            cfg.Media,
		minYear:          cfg.MinYear,
		maxYear:          cfg.MaxYear,
		logger:           logger,
	}, nil
}

// Start registers the player and greets them
func (r *Responder) Start(ctx context.Context, req *Request) (*Reply, error) {
	registered, err := r.gameService.RegisterPlayer(ctx, &game.RegisterPlayerInput{PlayerID: req.PlayerID})
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	welcome, err := r.messagingService.GetWelcomeMessage(ctx, &messaging.GetWelcomeMessageInput{
		PlayerName: req.PlayerName,
		Returning:  !registered.Created,
	})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Title: welcome.Title,
		Text:  welcome.Message,
	}, nil
}

// Help lists the rules and commands
func (r *Responder) Help(ctx context.Context, req *Request) (*Reply, error) {
	help, err := r.messagingService.GetHelpMessage(ctx, &messaging.GetHelpMessageInput{
		MinYear: r.minYear,
		MaxYear: r.maxYear,
	})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Title: help.Title,
		Text:  help.Message,
	}, nil
}

// Play starts a round and shows the event without its answer
func (r *Responder) Play(ctx context.Context, req *Request) (*Reply, error) {
	var output *game.StartRoundOutput
	err := r.withPlayer(ctx, req, func() error {
		var err error
		output, err = r.gameService.StartRound(ctx, &game.StartRoundInput{PlayerID: req.PlayerID})
		return err
	})
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	prompt, err := r.messagingService.GetRoundStartedMessage(ctx, &messaging.GetRoundStartedMessageInput{
		CatalogReset: output.CatalogReset,
	})
	if err != nil {
		return nil, err
	}

	reply := &Reply{
		Title:  prompt.Title,
		Text:   output.Event.Summary,
		Footer: prompt.Message,
	}

	if output.Event.Category != "" {
		reply.Fields = append(reply.Fields, Field{Name: "Category", Value: output.Event.Category})
	}

	return reply, nil
}

// Guess range checks the year and scores it
func (r *Responder) Guess(ctx context.Context, req *Request, year int) (*Reply, error) {
	player, err := r.player(ctx, req)
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	if !player.InRound() {
		return r.errorReply(ctx, req, game.ErrNotInRound)
	}

	if year < r.minYear || year > r.maxYear {
		return r.outOfRangeReply(ctx)
	}

	output, err := r.gameService.SubmitGuess(ctx, &game.SubmitGuessInput{
		PlayerID: req.PlayerID,
		Year:     year,
	})
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	result, err := r.messagingService.GetGuessResultMessage(ctx, &messaging.GetGuessResultMessageInput{
		Hint:     output.Hint,
		Attempts: output.Player.Attempts,
		Score:    output.Player.Score,
	})
	if err != nil {
		return nil, err
	}

	if output.ResolvedEvent == nil {
		return &Reply{
			Title: result.Title,
			Text:  result.Message,
		}, nil
	}

	return r.revealReply(result.Title, result.Message, output.ResolvedEvent, output.Player), nil
}

// Surrender reveals the answer
func (r *Responder) Surrender(ctx context.Context, req *Request) (*Reply, error) {
	var output *game.SurrenderOutput
	err := r.withPlayer(ctx, req, func() error {
		var err error
		output, err = r.gameService.Surrender(ctx, &game.SurrenderInput{PlayerID: req.PlayerID})
		return err
	})
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	message, err := r.messagingService.GetSurrenderMessage(ctx, &messaging.GetSurrenderMessageInput{
		Score: output.Player.Score,
	})
	if err != nil {
		return nil, err
	}

	return r.revealReply(message.Title, message.Message, output.Event, output.Player), nil
}

// Cancel leaves the current round
func (r *Responder) Cancel(ctx context.Context, req *Request) (*Reply, error) {
	err := r.withPlayer(ctx, req, func() error {
		_, err := r.gameService.Cancel(ctx, &game.CancelInput{PlayerID: req.PlayerID})
		return err
	})
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	message, err := r.messagingService.GetCancelMessage(ctx, &messaging.GetCancelMessageInput{})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Text: message.Message,
	}, nil
}

// Stat shows the player's statistics
func (r *Responder) Stat(ctx context.Context, req *Request) (*Reply, error) {
	player, err := r.player(ctx, req)
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	stats, err := r.messagingService.GetStatsMessage(ctx, &messaging.GetStatsMessageInput{
		PlayerName:      req.PlayerName,
		Score:           player.Score,
		Attempts:        player.Attempts,
		Solved:          len(player.GuessedEvents),
		AverageAttempts: player.AverageAttempts(),
	})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Title: stats.Title,
		Text:  stats.Message,
	}, nil
}

// Text handles a plain message: digits are a guess, anything else gets guidance
func (r *Responder) Text(ctx context.Context, req *Request, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if isDigits(text) {
		year, err := strconv.Atoi(text)
		if err != nil {
			// Too many digits for an int, far outside any accepted range
			year = r.maxYear + 1
		}
		return r.Guess(ctx, req, year)
	}

	player, err := r.player(ctx, req)
	if err != nil {
		return r.errorReply(ctx, req, err)
	}

	guidance, err := r.messagingService.GetGuidanceMessage(ctx, &messaging.GetGuidanceMessageInput{
		InRound: player.InRound(),
	})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Text: guidance.Message,
	}, nil
}

// player reads the player, registering unknown ids on the fly
func (r *Responder) player(ctx context.Context, req *Request) (*models.Player, error) {
	var player *models.Player
	err := r.withPlayer(ctx, req, func() error {
		output, err := r.gameService.GetPlayer(ctx, &game.GetPlayerInput{PlayerID: req.PlayerID})
		if err != nil {
			return err
		}
		player = output.Player
		return nil
	})
	return player, err
}

// withPlayer runs fn, and if the player is unknown registers them and runs fn once more
func (r *Responder) withPlayer(ctx context.Context, req *Request, fn func() error) error {
	err := fn()
	if !errors.Is(err, game.ErrPlayerNotFound) {
		return err
	}

	r.logger.Info("registering unknown player", zap.String("player_id", req.PlayerID))
	if _, err := r.gameService.RegisterPlayer(ctx, &game.RegisterPlayerInput{PlayerID: req.PlayerID}); err != nil {
		return err
	}

	return fn()
}

// revealReply shows the answer with its details and image
func (r *Responder) revealReply(title, message string, event *models.HistoricalEvent, player *models.Player) *Reply {
	reply := &Reply{
		Title: title,
		Text:  message + "\n\n" + event.Explain(),
	}

	if event.Details != "" {
		reply.Fields = append(reply.Fields, Field{Name: "Details", Value: event.Details})
	}

	reply.Fields = append(reply.Fields, Field{Name: "Score", Value: strconv.Itoa(player.Score), Inline: true})

	if m, ok := r.media.Resolve(event.MediaPath); ok {
		reply.Media = m
	}

	return reply
}

func (r *Responder) outOfRangeReply(ctx context.Context) (*Reply, error) {
	message, err := r.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: messaging.ErrorTypeOutOfRange,
		MinYear:   r.minYear,
		MaxYear:   r.maxYear,
	})
	if err != nil {
		return nil, err
	}

	return &Reply{
		Text:      message.Message,
		Ephemeral: true,
	}, nil
}

// errorReply converts game errors into something the player can act on
func (r *Responder) errorReply(ctx context.Context, req *Request, err error) (*Reply, error) {
	var errorType messaging.ErrorType
	switch {
	case errors.Is(err, game.ErrNotInRound):
		errorType = messaging.ErrorTypeNotInRound
	case errors.Is(err, game.ErrNoEventsAvailable):
		errorType = messaging.ErrorTypeNoEvents
	case errors.Is(err, game.ErrStoreUnavailable):
		errorType = messaging.ErrorTypeUnavailable
		r.logger.Error("store unavailable", zap.String("player_id", req.PlayerID), zap.Error(err))
	default:
		errorType = messaging.ErrorTypeUnknown
		r.logger.Error("command failed", zap.String("player_id", req.PlayerID), zap.Error(err))
	}

	message, msgErr := r.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if msgErr != nil {
		return nil, msgErr
	}

	return &Reply{
		Text:      message.Message,
		Ephemeral: true,
		IsError:   errorType != messaging.ErrorTypeNotInRound,
	}, nil
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
