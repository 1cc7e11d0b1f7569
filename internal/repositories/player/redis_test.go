package player

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetPlayer() {
	output, err := s.repo.CreatePlayer(s.ctx, &CreatePlayerInput{
		Player: models.NewPlayer("test-player-id", s.testNow),
	})
	s.Require().NoError(err)
	s.True(output.Created)
	s.Equal("test-player-id", output.Player.ID)

	retrieved, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		PlayerID: "test-player-id",
	})
	s.Require().NoError(err)
	s.Equal("test-player-id", retrieved.ID)
	s.False(retrieved.InRound())
	s.Empty(retrieved.GuessedEvents)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestCreatePlayerIsIdempotent() {
	first, err := s.repo.CreatePlayer(s.ctx, &CreatePlayerInput{
		Player: models.NewPlayer("test-player-id", s.testNow),
	})
	s.Require().NoError(err)
	s.True(first.Created)

	// Progress made between the two create calls must survive
	progressed := first.Player.Clone()
	progressed.Score = 9
	progressed.Attempts = 2
	progressed.MarkGuessed(1)
	s.Require().NoError(s.repo.SavePlayers(s.ctx, &SavePlayersInput{
		Players: []*models.Player{progressed},
	}))

	second, err := s.repo.CreatePlayer(s.ctx, &CreatePlayerInput{
		Player: models.NewPlayer("test-player-id", s.testNow.Add(time.Hour)),
	})
	s.Require().NoError(err)
	s.False(second.Created)
	s.Equal(9, second.Player.Score)
	s.Equal(2, second.Player.Attempts)
	s.Equal([]models.EventID{1}, second.Player.GuessedEvents)
	s.Equal(s.testNow.Unix(), second.Player.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentPlayer() {
	_, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		PlayerID: "non-existent-player",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetMalformedPlayer() {
	s.Require().NoError(s.mr.Set(playerKey("broken"), "{not json"))

	_, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{
		PlayerID: "broken",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrMalformedRecord)
}

func (s *RedisRepositoryTestSuite) TestSavePlayersUpsertsBatch() {
	inRound := models.NewPlayer("player-1", s.testNow)
	inRound.Round = models.InRound(7)
	inRound.Score = -3

	idle := models.NewPlayer("player-2", s.testNow)
	idle.MarkGuessed(3)
	idle.Score = 10

	err := s.repo.SavePlayers(s.ctx, &SavePlayersInput{
		Players: []*models.Player{inRound, idle},
	})
	s.Require().NoError(err)

	first, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	eventID, ok := first.Round.EventID()
	s.True(ok)
	s.Equal(models.EventID(7), eventID)
	s.Equal(-3, first.Score)

	second, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{PlayerID: "player-2"})
	s.Require().NoError(err)
	s.False(second.InRound())
	s.True(second.HasGuessed(3))
	s.Equal(10, second.Score)
}

func (s *RedisRepositoryTestSuite) TestSavePlayersEmptyIsNoop() {
	s.Require().NoError(s.repo.SavePlayers(s.ctx, &SavePlayersInput{}))
	s.Require().NoError(s.repo.SavePlayers(s.ctx, nil))
	s.Empty(s.mr.Keys())
}

func (s *RedisRepositoryTestSuite) TestStoreUnavailable() {
	s.mr.Close()

	_, err := s.repo.GetPlayer(s.ctx, &GetPlayerInput{PlayerID: "player-1"})
	s.ErrorIs(err, ErrStoreUnavailable)

	err = s.repo.SavePlayers(s.ctx, &SavePlayersInput{
		Players: []*models.Player{models.NewPlayer("player-1", s.testNow)},
	})
	s.ErrorIs(err, ErrStoreUnavailable)
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}
