package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	eventKeyPrefix = "guessyear:event:"
	eventOrderKey  = "guessyear:events:order"
	eventIDsKey    = "guessyear:events:ids"
)

var (
	// ErrStoreUnavailable is returned when Redis cannot serve the request
	ErrStoreUnavailable = errors.New("event store unavailable")

	// ErrMalformedRecord is returned when a stored event cannot be decoded
	ErrMalformedRecord = errors.New("malformed event record")
)

// Config holds configuration for the Redis event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed event repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func eventKey(id models.EventID) string {
	return eventKeyPrefix + strconv.FormatInt(int64(id), 10)
}

// LoadAll retrieves every event in the order they were first saved.
// A single undecodable record fails the whole load.
func (r *redisRepository) LoadAll(ctx context.Context) ([]*models.HistoricalEvent, error) {
	ids, err := r.client.LRange(ctx, eventOrderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list events: %w", ErrStoreUnavailable, err)
	}

	if len(ids) == 0 {
		return []*models.HistoricalEvent{}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, 0, len(ids))
	for _, rawID := range ids {
		commands = append(commands, pipe.Get(ctx, eventKeyPrefix+rawID))
	}

	// redis.Nil from a missing record surfaces per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: failed to get events: %w", ErrStoreUnavailable, err)
	}

	events := make([]*models.HistoricalEvent, 0, len(ids))
	for i, cmd := range commands {
		eventJSON, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, fmt.Errorf("%w: event %s is listed but has no record", ErrMalformedRecord, ids[i])
			}
			return nil, fmt.Errorf("%w: failed to get event %s: %w", ErrStoreUnavailable, ids[i], err)
		}

		event, err := decodeEvent(eventJSON)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s: %w", ErrMalformedRecord, ids[i], err)
		}
		events = append(events, event)
	}

	return events, nil
}

func decodeEvent(data []byte) (*models.HistoricalEvent, error) {
	var event models.HistoricalEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}

	if event.Summary == "" {
		return nil, errors.New("summary is empty")
	}

	return &event, nil
}

// saveEventsScript writes every record and appends ids that are not yet in
// the order list. KEYS are the order list, the id set and one record key per
// event. ARGV alternates event id and payload.
var saveEventsScript = redis.NewScript(`
local ordered = {}
for _, id in ipairs(redis.call('LRANGE', KEYS[1], 0, -1)) do
	ordered[id] = true
end

local inserted = 0
for i = 1, #ARGV, 2 do
	local id = ARGV[i]
	redis.call('SET', KEYS[2 + (i + 1) / 2], ARGV[i + 1])
	redis.call('SADD', KEYS[2], id)
	if not ordered[id] then
		redis.call('RPUSH', KEYS[1], id)
		ordered[id] = true
		inserted = inserted + 1
	end
end

return inserted
`)

// SaveEvents upserts events in one atomic step. Events missing from the
// catalog order are appended to it; existing ones keep their position.
func (r *redisRepository) SaveEvents(ctx context.Context, input *SaveEventsInput) (*SaveEventsOutput, error) {
	if input == nil || len(input.Events) == 0 {
		return &SaveEventsOutput{}, nil
	}

	keys := make([]string, 0, len(input.Events)+2)
	keys = append(keys, eventOrderKey, eventIDsKey)
	args := make([]interface{}, 0, len(input.Events)*2)
	for _, event := range input.Events {
		if event == nil || event.Summary == "" {
			return nil, errors.New("events must have a summary")
		}

		eventJSON, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event %d: %w", event.ID, err)
		}

		keys = append(keys, eventKey(event.ID))
		args = append(args, strconv.FormatInt(int64(event.ID), 10), eventJSON)
	}

	inserted, err := saveEventsScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save events: %w", ErrStoreUnavailable, err)
	}

	return &SaveEventsOutput{
		Inserted: inserted,
		Updated:  len(input.Events) - inserted,
	}, nil
}
