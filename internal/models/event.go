package models

import (
	"fmt"
	"strings"
)

// EventID identifies a historical event in the catalog
type EventID int64

// HistoricalEvent is a catalog entry the player has to date
type HistoricalEvent struct {
	// ID is the unique identifier of the event
	ID EventID `json:"_id" yaml:"id"`

	// Category is a free-form classification tag (war, science, ...)
	Category string `json:"_type" yaml:"category"`

	// Summary is the puzzle text shown to the player
	Summary string `json:"event" yaml:"summary"`

	// Year is the answer
	Year int `json:"date" yaml:"year"`

	// Details is an optional explanation shown once the round resolves
	Details string `json:"description,omitempty" yaml:"details,omitempty"`

	// MediaPath is an optional image path relative to the resources directory
	MediaPath string `json:"image_path,omitempty" yaml:"media_path,omitempty"`
}

// Explain returns the answer line shown after a round resolves
func (e *HistoricalEvent) Explain() string {
	return fmt.Sprintf("%d - %s.", e.Year, strings.TrimSuffix(e.Summary, "."))
}
