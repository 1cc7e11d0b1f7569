package game

import (
	"github.com/KirkDiggler/guessyear/internal/catalog"
	"github.com/KirkDiggler/guessyear/internal/common/clock"
	"github.com/KirkDiggler/guessyear/internal/common/uuid"
	"github.com/KirkDiggler/guessyear/internal/metrics"
	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/KirkDiggler/guessyear/internal/playercache"
	playerRepo "github.com/KirkDiggler/guessyear/internal/repositories/player"
	"go.uber.org/zap"
)

// Scoring rules
const (
	// CorrectGuessPoints is added when the player names the right year
	CorrectGuessPoints = 10

	// WrongGuessPenalty is subtracted for every wrong year
	WrongGuessPenalty = 1

	// SurrenderPenalty is subtracted when the player gives up
	SurrenderPenalty = 10
)

// Hint tells the player how their guess compares to the answer
type Hint string

const (
	// HintCorrect means the guess matched the event year
	HintCorrect Hint = "correct"

	// HintEarlier means the event happened before the guessed year
	HintEarlier Hint = "earlier"

	// HintLater means the event happened after the guessed year
	HintLater Hint = "later"
)

// Config holds configuration for the game service
type Config struct {
	// Catalog is the read-only set of playable events
	Catalog *catalog.Catalog

	// PlayerCache holds players touched by the game
	PlayerCache playercache.Store

	// PlayerRepo is used for the creation path at first contact
	PlayerRepo playerRepo.Repository

	// Optional dependencies, defaulted when nil
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// RegisterPlayerInput contains parameters for registering a player
type RegisterPlayerInput struct {
	// PlayerID is the Discord user ID
	PlayerID string
}

// RegisterPlayerOutput contains the result of registering a player
type RegisterPlayerOutput struct {
	// Player is the stored record
	Player *models.Player

	// Created is false when the player already existed
	Created bool
}

// GetPlayerInput contains parameters for reading a player
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerOutput contains a snapshot of the player
type GetPlayerOutput struct {
	Player *models.Player
}

// StartRoundInput contains parameters for starting a round
type StartRoundInput struct {
	PlayerID string
}

// StartRoundOutput contains the event the player has to date
type StartRoundOutput struct {
	// Event is the full record; only the summary may be shown while the round is open
	Event *models.HistoricalEvent

	// CatalogReset is true when every event had been solved and the solved list was cleared
	CatalogReset bool

	// Player is a snapshot after the round started
	Player *models.Player
}

// SubmitGuessInput contains parameters for guessing a year
type SubmitGuessInput struct {
	PlayerID string

	// Year is the guess, range checks happen before the game sees it
	Year int
}

// SubmitGuessOutput contains the result of a guess
type SubmitGuessOutput struct {
	// Hint compares the guess with the answer
	Hint Hint

	// ResolvedEvent is set only when the guess was correct
	ResolvedEvent *models.HistoricalEvent

	// Player is a snapshot after scoring
	Player *models.Player
}

// SurrenderInput contains parameters for surrendering
type SurrenderInput struct {
	PlayerID string
}

// SurrenderOutput contains the revealed event
type SurrenderOutput struct {
	Event  *models.HistoricalEvent
	Player *models.Player
}

// CancelInput contains parameters for cancelling a round
type CancelInput struct {
	PlayerID string
}

// CancelOutput contains the result of cancelling a round
type CancelOutput struct {
	Player *models.Player
}

// ShutdownOutput describes the final flush
type ShutdownOutput struct {
	// FlushID correlates the flush log lines
	FlushID string

	// Saved is the number of players written
	Saved int

	// Policy is the persistence policy of the player cache
	Policy playercache.Policy

	// AllOrNothing is true when the batch was written as one transaction
	AllOrNothing bool
}
