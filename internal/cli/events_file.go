package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/guessyear/internal/catalog"
	"github.com/KirkDiggler/guessyear/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalidEvent is returned when a seed file entry cannot be played
var ErrInvalidEvent = errors.New("invalid event")

// eventsFile is the YAML seed layout
type eventsFile struct {
	Events []*models.HistoricalEvent `yaml:"events"`
}

// readEventsFile loads events from a .yaml/.yml or .json file.
// JSON files use the stored record shape (_id, event, date, ...), YAML files
// use an events list with the readable field names.
func readEventsFile(path string) ([]*models.HistoricalEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var events []*models.HistoricalEvent
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		var file eventsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		events = file.Events
	default:
		return nil, fmt.Errorf("unsupported events file %s, want .yaml, .yml or .json", path)
	}

	if err := validateEvents(events); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return events, nil
}

func validateEvents(events []*models.HistoricalEvent) error {
	for i, e := range events {
		if e == nil {
			return fmt.Errorf("%w: entry %d is empty", ErrInvalidEvent, i)
		}
		if strings.TrimSpace(e.Summary) == "" {
			return fmt.Errorf("%w: event %d has no summary", ErrInvalidEvent, e.ID)
		}
	}

	// The catalog rejects duplicate ids
	_, err := catalog.New(events)
	return err
}
