package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/guessyear/internal/catalog"
	"github.com/KirkDiggler/guessyear/internal/common/clock"
	"github.com/KirkDiggler/guessyear/internal/common/uuid"
	"github.com/KirkDiggler/guessyear/internal/metrics"
	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/KirkDiggler/guessyear/internal/playercache"
	playerRepo "github.com/KirkDiggler/guessyear/internal/repositories/player"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	catalog       *catalog.Catalog
	playerCache   playercache.Store
	playerRepo    playerRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
	metrics       *metrics.Metrics
	logger        *zap.Logger
	locks         *playerLocks
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}

	if cfg.PlayerCache == nil {
		return nil, ErrNilPlayerCache
	}

	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}

	svc := &service{
		catalog:       cfg.Catalog,
		playerCache:   cfg.PlayerCache,
		playerRepo:    cfg.PlayerRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
		locks:         newPlayerLocks(),
	}

	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.New()
	}

	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	svc.metrics.CatalogEvents(svc.catalog.Len())

	return svc, nil
}

// RegisterPlayer creates the player record at first contact
func (s *service) RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	unlock := s.locks.lock(input.PlayerID)
	defer unlock()

	output, err := s.playerRepo.CreatePlayer(ctx, &playerRepo.CreatePlayerInput{
		Player: models.NewPlayer(input.PlayerID, s.clock.Now()),
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	if output.Created {
		s.logger.Info("player registered", zap.String("player_id", input.PlayerID))
	}

	return &RegisterPlayerOutput{
		Player:  output.Player,
		Created: output.Created,
	}, nil
}

// GetPlayer returns a snapshot of the player, loading it into the cache on first use
func (s *service) GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	unlock := s.locks.lock(input.PlayerID)
	defer unlock()

	player, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetPlayerOutput{
		Player: player,
	}, nil
}

// StartRound picks the first event in catalog order the player has not solved.
// Once everything is solved the solved list is cleared and selection starts over.
func (s *service) StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	if s.catalog.Len() == 0 {
		return nil, ErrNoEventsAvailable
	}

	unlock := s.locks.lock(input.PlayerID)
	defer unlock()

	player, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	reset := false
	event, ok := s.catalog.FirstUnguessed(player.HasGuessed)
	if !ok {
		player.ResetGuessed()
		reset = true

		event, ok = s.catalog.FirstUnguessed(player.HasGuessed)
		if !ok {
			return nil, ErrNoEventsAvailable
		}
	}

	player.Round = models.InRound(event.ID)
	if err := s.savePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.metrics.RoundStarted(reset)
	s.logger.Debug("round started",
		zap.String("player_id", player.ID),
		zap.Int64("event_id", int64(event.ID)),
		zap.Bool("catalog_reset", reset),
	)

	return &StartRoundOutput{
		Event:        event,
		CatalogReset: reset,
		Player:       player.Clone(),
	}, nil
}

// SubmitGuess compares the year with the current event.
// Every guess counts as an attempt, whether or not it is right.
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	unlock := s.locks.lock(input.PlayerID)
	defer unlock()

	player, event, err := s.loadPlayerInRound(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	player.Attempts++

	output := &SubmitGuessOutput{}
	switch {
	case input.Year == event.Year:
		player.MarkGuessed(event.ID)
		player.Round = models.Idle()
		player.Score += CorrectGuessPoints
		output.Hint = HintCorrect
		output.ResolvedEvent = event
	case input.Year > event.Year:
		player.Score -= WrongGuessPenalty
		output.Hint = HintEarlier
	default:
		player.Score -= WrongGuessPenalty
		output.Hint = HintLater
	}

	if err := s.savePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.metrics.Guess(string(output.Hint))
	s.logger.Debug("guess scored",
		zap.String("player_id", player.ID),
		zap.Int64("event_id", int64(event.ID)),
		zap.Int("year", input.Year),
		zap.String("hint", string(output.Hint)),
		zap.Int("score", player.Score),
	)

	output.Player = player.Clone()
	return output, nil
}

// Surrender reveals the event and applies the penalty. The event is not
// marked solved, so it will be offered again.
func (s *service) Surrender(ctx context.Context, input *SurrenderInput) (*SurrenderOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	unlock := s.locks.lock(input.PlayerID)
	defer unlock()

	player, event, err := s.loadPlayerInRound(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	player.Round = models.Idle()
	player.Score -= SurrenderPenalty

	if err := s.savePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.metrics.Surrender()
	s.logger.Debug("player surrendered",
		zap.String("player_id", player.ID),
		zap.Int64("event_id", int64(event.ID)),
	)

	return &SurrenderOutput{
		Event:  event,
		Player: player.Clone(),
	}, nil
}

// Cancel leaves the round without touching the score
func (s *service) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	unlock := s.locks.lock(input.PlayerID)
	defer unlock()

	player, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if !player.InRound() {
		return nil, ErrNotInRound
	}

	player.Round = models.Idle()
	if err := s.savePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.metrics.Cancel()
	s.logger.Debug("round cancelled", zap.String("player_id", player.ID))

	return &CancelOutput{
		Player: player.Clone(),
	}, nil
}

// Shutdown flushes the player cache once. Failures are reported, not retried.
func (s *service) Shutdown(ctx context.Context) (*ShutdownOutput, error) {
	flushID := s.uuidGenerator.NewUUID()
	logger := s.logger.With(zap.String("flush_id", flushID))

	started := s.clock.Now()
	result, err := s.playerCache.Flush(ctx)
	if err != nil {
		logger.Error("failed to flush players", zap.Error(err))
		return nil, mapStoreError(err)
	}
	took := s.clock.Now().Sub(started)

	s.metrics.Flush(took, result.Saved)
	logger.Info("players flushed",
		zap.Int("saved", result.Saved),
		zap.String("policy", string(result.Policy)),
		zap.Bool("all_or_nothing", result.AllOrNothing),
		zap.Duration("took", took),
	)

	return &ShutdownOutput{
		FlushID:      flushID,
		Saved:        result.Saved,
		Policy:       result.Policy,
		AllOrNothing: result.AllOrNothing,
	}, nil
}

// loadPlayer reads the player through the cache. Callers must hold the player lock.
func (s *service) loadPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	player, err := s.playerCache.Get(ctx, playerID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.metrics.CachedPlayers(s.playerCache.Len())
	return player, nil
}

// loadPlayerInRound loads the player and the event they are guessing
func (s *service) loadPlayerInRound(ctx context.Context, playerID string) (*models.Player, *models.HistoricalEvent, error) {
	player, err := s.loadPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	eventID, ok := player.Round.EventID()
	if !ok {
		return nil, nil, ErrNotInRound
	}

	event, ok := s.catalog.Get(eventID)
	if !ok {
		// The stored round points at an event that is no longer in the catalog
		return nil, nil, fmt.Errorf("%w: player %s is guessing unknown event %d", ErrMalformedRecord, playerID, eventID)
	}

	return player, event, nil
}

func (s *service) savePlayer(ctx context.Context, player *models.Player) error {
	player.UpdatedAt = s.clock.Now()
	if err := s.playerCache.Put(ctx, player); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// mapStoreError translates repository errors into game errors
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, playerRepo.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, playerRepo.ErrMalformedRecord):
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	case errors.Is(err, playerRepo.ErrStoreUnavailable):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		return err
	}
}
