package playercache

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/KirkDiggler/guessyear/internal/playercache Store

import (
	"context"

	"github.com/KirkDiggler/guessyear/internal/models"
)

// Store owns the in-memory copies of players touched by the game.
// Records passed in and handed out are copies; callers never share state with the store.
type Store interface {
	// Get returns the cached player, loading it from the repository on a miss
	Get(ctx context.Context, playerID string) (*models.Player, error)

	// Put replaces the cached player
	Put(ctx context.Context, player *models.Player) error

	// Flush persists pending changes
	Flush(ctx context.Context) (*FlushResult, error)

	// Len returns the number of cached players
	Len() int
}

// Policy names how a store persists changes
type Policy string

const (
	// PolicyWriteBack keeps changes in memory until Flush
	PolicyWriteBack Policy = "write_back"

	// PolicyWriteThrough persists every Put immediately
	PolicyWriteThrough Policy = "write_through"
)

// FlushResult describes a completed flush
type FlushResult struct {
	// Policy is the persistence policy of the store that flushed
	Policy Policy

	// Saved is the number of players written
	Saved int

	// AllOrNothing is true when the batch was written as a single transaction
	AllOrNothing bool
}
