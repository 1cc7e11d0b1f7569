package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RoundState is either Idle or InRound with the event being guessed.
// The zero value is Idle.
type RoundState struct {
	eventID EventID
	active  bool
}

// Idle returns the state of a player who is not guessing anything
func Idle() RoundState {
	return RoundState{}
}

// InRound returns the state of a player guessing the given event
func InRound(id EventID) RoundState {
	return RoundState{eventID: id, active: true}
}

// Active reports whether a round is in progress
func (r RoundState) Active() bool {
	return r.active
}

// EventID returns the event being guessed and whether a round is in progress
func (r RoundState) EventID() (EventID, bool) {
	return r.eventID, r.active
}

// String implements fmt.Stringer
func (r RoundState) String() string {
	if !r.active {
		return "idle"
	}
	return fmt.Sprintf("in_round(%d)", r.eventID)
}

// MarshalJSON stores an idle round as null and an active round as the event ID
func (r RoundState) MarshalJSON() ([]byte, error) {
	if !r.active {
		return []byte("null"), nil
	}
	return json.Marshal(r.eventID)
}

// UnmarshalJSON reads null as idle and a number as an active round
func (r *RoundState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Idle()
		return nil
	}

	var id EventID
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid current event: %w", err)
	}
	*r = InRound(id)
	return nil
}
