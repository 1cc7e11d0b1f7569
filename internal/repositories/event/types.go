package event

import "github.com/KirkDiggler/guessyear/internal/models"

// SaveEventsInput contains parameters for saving events
type SaveEventsInput struct {
	Events []*models.HistoricalEvent
}

// SaveEventsOutput contains the result of saving events
type SaveEventsOutput struct {
	// Inserted is the number of events that were not stored before
	Inserted int

	// Updated is the number of existing events that were overwritten
	Updated int
}
