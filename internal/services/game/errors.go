package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrStoreUnavailable  GameError = "store unavailable"
	ErrMalformedRecord   GameError = "malformed record"
	ErrPlayerNotFound    GameError = "player not found"
	ErrNoEventsAvailable GameError = "no events available"
	ErrNotInRound        GameError = "player is not in a round"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilCatalog        GameError = "catalog cannot be nil"
	ErrNilPlayerCache    GameError = "player cache cannot be nil"
	ErrNilPlayerRepo     GameError = "player repository cannot be nil"
	ErrEmptyPlayerID     GameError = "player ID cannot be empty"
)
