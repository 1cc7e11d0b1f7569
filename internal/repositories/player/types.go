package player

import "github.com/KirkDiggler/guessyear/internal/models"

// CreatePlayerInput contains parameters for creating a player
type CreatePlayerInput struct {
	Player *models.Player
}

// CreatePlayerOutput contains the result of creating a player
type CreatePlayerOutput struct {
	// Player is the stored record, which is the existing one when Created is false
	Player *models.Player

	// Created is false when a record with the same ID already existed
	Created bool
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// SavePlayersInput contains parameters for saving a batch of players
type SavePlayersInput struct {
	Players []*models.Player
}
