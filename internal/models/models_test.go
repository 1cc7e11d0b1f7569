package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ModelsTestSuite struct {
	suite.Suite
	testNow time.Time
}

func (s *ModelsTestSuite) SetupTest() {
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestModelsTestSuite(t *testing.T) {
	suite.Run(t, new(ModelsTestSuite))
}

func (s *ModelsTestSuite) TestNewPlayerIsIdle() {
	player := NewPlayer("player-1", s.testNow)

	s.False(player.InRound())
	s.Empty(player.GuessedEvents)
	s.Equal(0, player.Score)
	s.Equal(0, player.Attempts)
	s.Equal(s.testNow, player.CreatedAt)
}

func (s *ModelsTestSuite) TestRoundStateRoundTrip() {
	player := NewPlayer("player-1", s.testNow)
	player.Round = InRound(42)
	player.GuessedEvents = []EventID{1, 2}

	data, err := json.Marshal(player)
	s.Require().NoError(err)
	s.Contains(string(data), `"current_event":42`)

	var decoded Player
	s.Require().NoError(json.Unmarshal(data, &decoded))
	id, ok := decoded.Round.EventID()
	s.True(ok)
	s.Equal(EventID(42), id)
	s.Equal([]EventID{1, 2}, decoded.GuessedEvents)
}

func (s *ModelsTestSuite) TestIdleRoundIsNull() {
	data, err := json.Marshal(NewPlayer("player-1", s.testNow))
	s.Require().NoError(err)
	s.Contains(string(data), `"current_event":null`)

	var decoded Player
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.False(decoded.InRound())
}

func (s *ModelsTestSuite) TestMissingRoundDecodesIdle() {
	var decoded Player
	s.Require().NoError(json.Unmarshal([]byte(`{"_id":"p","score":3}`), &decoded))
	s.False(decoded.InRound())
	s.Equal(3, decoded.Score)
}

func (s *ModelsTestSuite) TestInvalidRoundFails() {
	var decoded Player
	s.Error(json.Unmarshal([]byte(`{"_id":"p","current_event":"soon"}`), &decoded))
}

func (s *ModelsTestSuite) TestAverageAttempts() {
	player := NewPlayer("player-1", s.testNow)
	player.Attempts = 7
	s.Equal(0, player.AverageAttempts())

	player.GuessedEvents = []EventID{1, 2}
	s.Equal(4, player.AverageAttempts()) // 3.5 rounds to even

	player.Attempts = 5
	s.Equal(2, player.AverageAttempts()) // 2.5 rounds to even

	player.GuessedEvents = []EventID{1, 2, 3}
	s.Equal(2, player.AverageAttempts())
}

func (s *ModelsTestSuite) TestCloneIsIndependent() {
	player := NewPlayer("player-1", s.testNow)
	player.MarkGuessed(1)

	clone := player.Clone()
	clone.MarkGuessed(2)
	clone.Score = 10

	s.Equal([]EventID{1}, player.GuessedEvents)
	s.Equal(0, player.Score)
	s.True(clone.HasGuessed(2))
	s.False(player.HasGuessed(2))
}

func (s *ModelsTestSuite) TestResetGuessed() {
	player := NewPlayer("player-1", s.testNow)
	player.MarkGuessed(1)
	player.ResetGuessed()
	s.Empty(player.GuessedEvents)
	s.False(player.HasGuessed(1))
}

func (s *ModelsTestSuite) TestExplain() {
	event := &HistoricalEvent{ID: 1, Summary: "Dissolution of the Soviet Union", Year: 1991}
	s.Equal("1991 - Dissolution of the Soviet Union.", event.Explain())

	event.Summary = "Battle of Borodino."
	event.Year = 1812
	s.Equal("1812 - Battle of Borodino.", event.Explain())
}
