package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/guessyear/internal/services/game Service

import "context"

// Service defines the interface for game operations.
// Operations for the same player are serialized; different players run in parallel.
type Service interface {
	// RegisterPlayer creates the player on first contact, returning the existing record otherwise
	RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error)

	// GetPlayer returns a snapshot of the player's progress
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)

	// StartRound assigns the next unsolved event to the player
	StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error)

	// SubmitGuess scores a year guess against the current event
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// Surrender ends the round with a penalty and reveals the event
	Surrender(ctx context.Context, input *SurrenderInput) (*SurrenderOutput, error)

	// Cancel ends the round without changing the score
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// Shutdown persists every cached player
	Shutdown(ctx context.Context) (*ShutdownOutput, error)
}
