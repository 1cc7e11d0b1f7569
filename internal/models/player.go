package models

import (
	"math"
	"slices"
	"time"
)

// Player represents a person playing the guessing game
type Player struct {
	// ID is the Discord user ID of the player
	ID string `json:"_id"`

	// Round tracks whether the player is currently guessing an event
	Round RoundState `json:"current_event"`

	// GuessedEvents contains the IDs of events the player has solved
	GuessedEvents []EventID `json:"guessed_events"`

	// Attempts is the total number of guesses the player has submitted
	Attempts int `json:"attempts"`

	// Score is the player's running score, it can go negative
	Score int `json:"score"`

	// CreatedAt is when the player first interacted with the bot
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the player record last changed
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayer creates an idle player with no progress
func NewPlayer(id string, now time.Time) *Player {
	return &Player{
		ID:            id,
		Round:         Idle(),
		GuessedEvents: []EventID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// InRound reports whether the player has an unresolved event
func (p *Player) InRound() bool {
	return p.Round.Active()
}

// HasGuessed reports whether the player already solved the event
func (p *Player) HasGuessed(id EventID) bool {
	return slices.Contains(p.GuessedEvents, id)
}

// MarkGuessed records a solved event
func (p *Player) MarkGuessed(id EventID) {
	p.GuessedEvents = append(p.GuessedEvents, id)
}

// ResetGuessed forgets every solved event so the catalog can be replayed
func (p *Player) ResetGuessed() {
	p.GuessedEvents = []EventID{}
}

// AverageAttempts returns attempts per solved event, rounded half to even.
// Zero when nothing has been solved yet.
func (p *Player) AverageAttempts() int {
	if len(p.GuessedEvents) == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(p.Attempts) / float64(len(p.GuessedEvents))))
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.GuessedEvents = slices.Clone(p.GuessedEvents)
	if c.GuessedEvents == nil {
		c.GuessedEvents = []EventID{}
	}
	return &c
}
