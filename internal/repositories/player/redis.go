package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for player documents
	playerKeyPrefix = "guessyear:player:"
)

var (
	// ErrPlayerNotFound is returned when a player is not found
	ErrPlayerNotFound = errors.New("player not found")

	// ErrStoreUnavailable is returned when Redis cannot serve the request
	ErrStoreUnavailable = errors.New("player store unavailable")

	// ErrMalformedRecord is returned when a stored player cannot be decoded
	ErrMalformedRecord = errors.New("malformed player record")
)

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

func playerKey(id string) string {
	return playerKeyPrefix + id
}

// CreatePlayer stores the player only if no record exists under its ID
func (r *redisRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*CreatePlayerOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.New("input and player cannot be nil")
	}

	if input.Player.ID == "" {
		return nil, errors.New("player ID cannot be empty")
	}

	playerJSON, err := json.Marshal(input.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player: %w", err)
	}

	created, err := r.client.SetNX(ctx, playerKey(input.Player.ID), playerJSON, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create player: %w", ErrStoreUnavailable, err)
	}

	if created {
		return &CreatePlayerOutput{
			Player:  input.Player.Clone(),
			Created: true,
		}, nil
	}

	existing, err := r.GetPlayer(ctx, &GetPlayerInput{
		PlayerID: input.Player.ID,
	})
	if err != nil {
		return nil, err
	}

	return &CreatePlayerOutput{
		Player:  existing,
		Created: false,
	}, nil
}

// GetPlayer retrieves a player by ID from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	playerJSON, err := r.client.Get(ctx, playerKey(input.PlayerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w: failed to get player: %w", ErrStoreUnavailable, err)
	}

	var player models.Player
	if err := json.Unmarshal(playerJSON, &player); err != nil {
		return nil, fmt.Errorf("%w: player %s: %w", ErrMalformedRecord, input.PlayerID, err)
	}

	if player.GuessedEvents == nil {
		player.GuessedEvents = []models.EventID{}
	}

	return &player, nil
}

// SavePlayers upserts every player in a single MULTI/EXEC transaction,
// so either the whole batch is written or none of it is
func (r *redisRepository) SavePlayers(ctx context.Context, input *SavePlayersInput) error {
	if input == nil || len(input.Players) == 0 {
		return nil
	}

	payloads := make(map[string][]byte, len(input.Players))
	for _, player := range input.Players {
		if player == nil || player.ID == "" {
			return errors.New("players must have an ID")
		}

		playerJSON, err := json.Marshal(player)
		if err != nil {
			return fmt.Errorf("failed to marshal player %s: %w", player.ID, err)
		}
		payloads[playerKey(player.ID)] = playerJSON
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, payload := range payloads {
			pipe.Set(ctx, key, payload, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to save players: %w", ErrStoreUnavailable, err)
	}

	return nil
}
