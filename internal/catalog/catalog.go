package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/guessyear/internal/models"
	eventRepo "github.com/KirkDiggler/guessyear/internal/repositories/event"
)

// ErrDuplicateEvent is returned when two events share an ID
var ErrDuplicateEvent = errors.New("duplicate event id")

// Catalog is the read-only set of events available for play.
// It never changes after construction, so concurrent reads need no locking.
type Catalog struct {
	order []models.EventID
	byID  map[models.EventID]*models.HistoricalEvent
}

// New builds a catalog from events in iteration order
func New(events []*models.HistoricalEvent) (*Catalog, error) {
	c := &Catalog{
		order: make([]models.EventID, 0, len(events)),
		byID:  make(map[models.EventID]*models.HistoricalEvent, len(events)),
	}

	for _, event := range events {
		if event == nil {
			return nil, errors.New("event cannot be nil")
		}
		if _, exists := c.byID[event.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateEvent, event.ID)
		}

		stored := *event
		c.order = append(c.order, event.ID)
		c.byID[event.ID] = &stored
	}

	return c, nil
}

// Load reads every event from the repository once and builds the catalog
func Load(ctx context.Context, repo eventRepo.Repository) (*Catalog, error) {
	if repo == nil {
		return nil, errors.New("event repository cannot be nil")
	}

	events, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	c, err := New(events)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", eventRepo.ErrMalformedRecord, err)
	}

	return c, nil
}

// Len returns the number of events
func (c *Catalog) Len() int {
	return len(c.order)
}

// Get returns a copy of the event with the given ID
func (c *Catalog) Get(id models.EventID) (*models.HistoricalEvent, bool) {
	event, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	copied := *event
	return &copied, true
}

// Events returns copies of every event in iteration order
func (c *Catalog) Events() []*models.HistoricalEvent {
	events := make([]*models.HistoricalEvent, 0, len(c.order))
	for _, id := range c.order {
		copied := *c.byID[id]
		events = append(events, &copied)
	}
	return events
}

// FirstUnguessed returns the first event, in iteration order, for which
// guessed reports false
func (c *Catalog) FirstUnguessed(guessed func(models.EventID) bool) (*models.HistoricalEvent, bool) {
	for _, id := range c.order {
		if !guessed(id) {
			return c.Get(id)
		}
	}
	return nil, false
}
