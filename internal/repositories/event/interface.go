package event

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/guessyear/internal/repositories/event Repository

import (
	"context"

	"github.com/KirkDiggler/guessyear/internal/models"
)

// Repository defines the interface for historical event persistence
type Repository interface {
	// LoadAll retrieves every event in insertion order
	LoadAll(ctx context.Context) ([]*models.HistoricalEvent, error)

	// SaveEvents upserts events, appending new ones to the catalog order
	SaveEvents(ctx context.Context, input *SaveEventsInput) (*SaveEventsOutput, error)
}
