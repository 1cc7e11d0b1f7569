package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/guessyear/internal/repositories/event"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedEventsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-events",
		Short: "Load historical events from a file into Redis",
		Long: `seed-events reads a YAML or JSON events file and stores every event.
Existing events with the same id are overwritten in place and keep their position
in the catalog; new events are appended.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newRedisClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			eventRepo, err := event.NewRedis(&event.Config{RedisClient: client})
			if err != nil {
				return err
			}

			output, err := seedEvents(ctx, eventRepo, file)
			if err != nil {
				return err
			}

			zlog.Info("events seeded",
				zap.String("file", file),
				zap.Int("inserted", output.Inserted),
				zap.Int("updated", output.Updated),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Events file (.yaml, .yml or .json)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// seedEvents reads the file and saves its events
func seedEvents(ctx context.Context, eventRepo event.Repository, path string) (*event.SaveEventsOutput, error) {
	events, err := readEventsFile(path)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, errors.New("events file contains no events")
	}

	output, err := eventRepo.SaveEvents(ctx, &event.SaveEventsInput{Events: events})
	if err != nil {
		return nil, fmt.Errorf("failed to save events: %w", err)
	}

	return output, nil
}
