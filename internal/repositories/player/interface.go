package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/guessyear/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/guessyear/internal/models"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// CreatePlayer stores a new player, or returns the stored one unchanged if it already exists
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error)

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// SavePlayers upserts a batch of players
	SavePlayers(ctx context.Context, input *SavePlayersInput) error
}
