package messaging

import (
	"github.com/KirkDiggler/guessyear/internal/dice"
	"github.com/KirkDiggler/guessyear/internal/services/game"
)

// ErrorType identifies the user-visible failure a reply explains
type ErrorType string

const (
	// ErrorTypeNotInRound is used when a round command arrives while idle
	ErrorTypeNotInRound ErrorType = "not_in_round"

	// ErrorTypeOutOfRange is used when a guessed year is outside the accepted range
	ErrorTypeOutOfRange ErrorType = "out_of_range"

	// ErrorTypeNoEvents is used when the catalog is empty
	ErrorTypeNoEvents ErrorType = "no_events"

	// ErrorTypeUnavailable is used when the store cannot be reached
	ErrorTypeUnavailable ErrorType = "unavailable"

	// ErrorTypeUnknown covers everything else
	ErrorTypeUnknown ErrorType = "unknown"
)

// GetWelcomeMessageInput contains parameters for the welcome message
type GetWelcomeMessageInput struct {
	// PlayerName is the display name of the player
	PlayerName string

	// Returning is true when the player was already registered
	Returning bool
}

// GetWelcomeMessageOutput contains the welcome message
type GetWelcomeMessageOutput struct {
	Title   string
	Message string
}

// GetHelpMessageInput contains parameters for the help message
type GetHelpMessageInput struct {
	// MinYear and MaxYear bound the accepted guesses
	MinYear int
	MaxYear int
}

// GetHelpMessageOutput contains the help message
type GetHelpMessageOutput struct {
	Title   string
	Message string
}

// GetRoundStartedMessageInput contains parameters for the round prompt
type GetRoundStartedMessageInput struct {
	// CatalogReset is true when the player had solved every event and starts over
	CatalogReset bool
}

// GetRoundStartedMessageOutput contains the round prompt
type GetRoundStartedMessageOutput struct {
	Title   string
	Message string
}

// GetGuessResultMessageInput contains parameters for a guess reply
type GetGuessResultMessageInput struct {
	Hint     game.Hint
	Attempts int
	Score    int
}

// GetGuessResultMessageOutput contains the guess reply
type GetGuessResultMessageOutput struct {
	Title   string
	Message string
}

// GetSurrenderMessageInput contains parameters for the surrender reply
type GetSurrenderMessageInput struct {
	Score int
}

// GetSurrenderMessageOutput contains the surrender reply
type GetSurrenderMessageOutput struct {
	Title   string
	Message string
}

// GetCancelMessageInput contains parameters for the cancel reply
type GetCancelMessageInput struct{}

// GetCancelMessageOutput contains the cancel reply
type GetCancelMessageOutput struct {
	Message string
}

// GetGuidanceMessageInput contains parameters for the guidance reply
type GetGuidanceMessageInput struct {
	// InRound selects between the "send a year" and "read the rules" replies
	InRound bool
}

// GetGuidanceMessageOutput contains the guidance reply
type GetGuidanceMessageOutput struct {
	Message string
}

// GetStatsMessageInput contains the statistics to render
type GetStatsMessageInput struct {
	PlayerName      string
	Score           int
	Attempts        int
	Solved          int
	AverageAttempts int
}

// GetStatsMessageOutput contains the rendered statistics
type GetStatsMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error
	ErrorType ErrorType

	// MinYear and MaxYear are used by ErrorTypeOutOfRange
	MinYear int
	MaxYear int
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Roller picks flavor lines, seeded from the clock when nil
	Roller *dice.Roller
}
