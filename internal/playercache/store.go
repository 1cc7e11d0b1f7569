package playercache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/guessyear/internal/models"
	playerRepo "github.com/KirkDiggler/guessyear/internal/repositories/player"
)

// Config holds configuration for a player cache
type Config struct {
	// Policy selects write-back or write-through persistence
	Policy Policy

	// PlayerRepo is the durable store behind the cache
	PlayerRepo playerRepo.Repository
}

// store implements Store for both policies
type store struct {
	policy     Policy
	playerRepo playerRepo.Repository

	mu      sync.Mutex
	players map[string]*models.Player

	// dirty maps player IDs to the revision of their last unflushed Put
	dirty    map[string]uint64
	revision uint64
}

// New creates a player cache. An empty policy defaults to write-back.
func New(cfg *Config) (*store, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.PlayerRepo == nil {
		return nil, errors.New("player repository cannot be nil")
	}

	policy := cfg.Policy
	if policy == "" {
		policy = PolicyWriteBack
	}
	if policy != PolicyWriteBack && policy != PolicyWriteThrough {
		return nil, fmt.Errorf("unknown persistence policy %q", policy)
	}

	return &store{
		policy:     policy,
		playerRepo: cfg.PlayerRepo,
		players:    make(map[string]*models.Player),
		dirty:      make(map[string]uint64),
	}, nil
}

// Get returns a copy of the cached player, reading through to the repository on a miss
func (s *store) Get(ctx context.Context, playerID string) (*models.Player, error) {
	s.mu.Lock()
	cached, ok := s.players[playerID]
	s.mu.Unlock()
	if ok {
		return cached.Clone(), nil
	}

	loaded, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		PlayerID: playerID,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have loaded or changed it while we were reading
	if cached, ok := s.players[playerID]; ok {
		return cached.Clone(), nil
	}
	s.players[playerID] = loaded.Clone()

	return loaded, nil
}

// Put stores a copy of the player and persists it according to the policy
func (s *store) Put(ctx context.Context, player *models.Player) error {
	if player == nil || player.ID == "" {
		return errors.New("player must have an ID")
	}

	if s.policy == PolicyWriteThrough {
		if err := s.playerRepo.SavePlayers(ctx, &playerRepo.SavePlayersInput{
			Players: []*models.Player{player},
		}); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[player.ID] = player.Clone()
	if s.policy == PolicyWriteBack {
		s.revision++
		s.dirty[player.ID] = s.revision
	}

	return nil
}

// Flush writes every dirty player in one batch. On failure the players stay
// dirty so a later flush can retry them.
func (s *store) Flush(ctx context.Context) (*FlushResult, error) {
	result := &FlushResult{
		Policy:       s.policy,
		AllOrNothing: true,
	}

	s.mu.Lock()
	batch := make([]*models.Player, 0, len(s.dirty))
	revisions := make(map[string]uint64, len(s.dirty))
	for id, revision := range s.dirty {
		batch = append(batch, s.players[id].Clone())
		revisions[id] = revision
	}
	s.mu.Unlock()

	if len(batch) == 0 {
		return result, nil
	}

	if err := s.playerRepo.SavePlayers(ctx, &playerRepo.SavePlayersInput{
		Players: batch,
	}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for id, revision := range revisions {
		// Players put again during the write stay dirty
		if s.dirty[id] == revision {
			delete(s.dirty, id)
		}
	}
	s.mu.Unlock()

	result.Saved = len(batch)
	return result, nil
}

// Len returns the number of cached players
func (s *store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}
