package playercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/guessyear/internal/models"
	playerRepo "github.com/KirkDiggler/guessyear/internal/repositories/player"
	"github.com/KirkDiggler/guessyear/internal/repositories/player/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StoreTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockPlayerRepo *mocks.MockRepository
	ctx            context.Context
	testNow        time.Time
	testPlayer     *models.Player
}

func (s *StoreTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPlayerRepo = mocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.testPlayer = models.NewPlayer("test-player-id", s.testNow)
}

func (s *StoreTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) newStore(policy Policy) Store {
	store, err := New(&Config{
		Policy:     policy,
		PlayerRepo: s.mockPlayerRepo,
	})
	s.Require().NoError(err)
	return store
}

func (s *StoreTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)

	_, err = New(&Config{Policy: "sometimes", PlayerRepo: s.mockPlayerRepo})
	s.Error(err)
}

func (s *StoreTestSuite) TestGetReadsThroughOnce() {
	store := s.newStore(PolicyWriteBack)

	s.mockPlayerRepo.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: "test-player-id"}).
		Return(s.testPlayer, nil).
		Times(1)

	first, err := store.Get(s.ctx, "test-player-id")
	s.Require().NoError(err)
	s.Equal("test-player-id", first.ID)

	second, err := store.Get(s.ctx, "test-player-id")
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1, store.Len())
}

func (s *StoreTestSuite) TestGetPropagatesNotFound() {
	store := s.newStore(PolicyWriteBack)

	s.mockPlayerRepo.EXPECT().
		GetPlayer(s.ctx, gomock.Any()).
		Return(nil, playerRepo.ErrPlayerNotFound)

	_, err := store.Get(s.ctx, "missing")
	s.ErrorIs(err, playerRepo.ErrPlayerNotFound)
	s.Equal(0, store.Len())
}

func (s *StoreTestSuite) TestGetReturnsCopies() {
	store := s.newStore(PolicyWriteBack)
	s.Require().NoError(store.Put(s.ctx, s.testPlayer))

	player, err := store.Get(s.ctx, "test-player-id")
	s.Require().NoError(err)
	player.Score = 100
	player.MarkGuessed(5)

	again, err := store.Get(s.ctx, "test-player-id")
	s.Require().NoError(err)
	s.Equal(0, again.Score)
	s.False(again.HasGuessed(5))
}

func (s *StoreTestSuite) TestWriteBackDefersUntilFlush() {
	store := s.newStore(PolicyWriteBack)

	changed := s.testPlayer.Clone()
	changed.Score = 9
	s.Require().NoError(store.Put(s.ctx, changed))

	s.mockPlayerRepo.EXPECT().
		SavePlayers(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *playerRepo.SavePlayersInput) error {
			s.Require().Len(input.Players, 1)
			s.Equal(9, input.Players[0].Score)
			return nil
		})

	result, err := store.Flush(s.ctx)
	s.Require().NoError(err)
	s.Equal(PolicyWriteBack, result.Policy)
	s.Equal(1, result.Saved)
	s.True(result.AllOrNothing)

	// Nothing left to write
	result, err = store.Flush(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, result.Saved)
}

func (s *StoreTestSuite) TestWriteBackFailureKeepsPlayersDirty() {
	store := s.newStore(PolicyWriteBack)
	s.Require().NoError(store.Put(s.ctx, s.testPlayer))

	gomock.InOrder(
		s.mockPlayerRepo.EXPECT().SavePlayers(s.ctx, gomock.Any()).Return(playerRepo.ErrStoreUnavailable),
		s.mockPlayerRepo.EXPECT().SavePlayers(s.ctx, gomock.Any()).Return(nil),
	)

	_, err := store.Flush(s.ctx)
	s.ErrorIs(err, playerRepo.ErrStoreUnavailable)

	result, err := store.Flush(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, result.Saved)
}

func (s *StoreTestSuite) TestFlushOnlyWritesChangedPlayers() {
	store := s.newStore(PolicyWriteBack)

	s.mockPlayerRepo.EXPECT().
		GetPlayer(s.ctx, gomock.Any()).
		Return(s.testPlayer, nil)

	_, err := store.Get(s.ctx, "test-player-id")
	s.Require().NoError(err)

	result, err := store.Flush(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, result.Saved)
}

func (s *StoreTestSuite) TestWriteThroughPersistsOnPut() {
	store := s.newStore(PolicyWriteThrough)

	s.mockPlayerRepo.EXPECT().
		SavePlayers(s.ctx, &playerRepo.SavePlayersInput{Players: []*models.Player{s.testPlayer}}).
		Return(nil)

	s.Require().NoError(store.Put(s.ctx, s.testPlayer))

	result, err := store.Flush(s.ctx)
	s.Require().NoError(err)
	s.Equal(PolicyWriteThrough, result.Policy)
	s.Equal(0, result.Saved)
}

func (s *StoreTestSuite) TestWriteThroughFailureLeavesCacheUntouched() {
	store := s.newStore(PolicyWriteThrough)

	s.mockPlayerRepo.EXPECT().
		SavePlayers(s.ctx, gomock.Any()).
		Return(errors.New("boom"))

	s.Error(store.Put(s.ctx, s.testPlayer))
	s.Equal(0, store.Len())
}
