package discord

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KirkDiggler/guessyear/internal/config"
	"github.com/KirkDiggler/guessyear/internal/dice"
	"github.com/KirkDiggler/guessyear/internal/media"
	"github.com/KirkDiggler/guessyear/internal/models"
	"github.com/KirkDiggler/guessyear/internal/services/game"
	gameMocks "github.com/KirkDiggler/guessyear/internal/services/game/mocks"
	"github.com/KirkDiggler/guessyear/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ResponderTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockGameService *gameMocks.MockService
	responder       *Responder
	ctx             context.Context

	// Test data
	req      *Request
	testTime time.Time
	borodino *models.HistoricalEvent
}

func (s *ResponderTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGameService = gameMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()
	s.req = &Request{PlayerID: "player-1", PlayerName: "Ada"}
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	dir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "borodino.jpg"), []byte("jpeg"), 0o644))
	resolver, err := media.NewResolver(dir)
	s.Require().NoError(err)

	messagingService, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: dice.New(&dice.Config{Seed: 1}),
	})
	s.Require().NoError(err)

	s.responder, err = NewResponder(&ResponderConfig{
		GameService:      s.mockGameService,
		MessagingService: messagingService,
		Media:            resolver,
		MinYear:          config.DefaultGuessMinYear,
		MaxYear:          config.DefaultGuessMaxYear,
	})
	s.Require().NoError(err)

	s.borodino = &models.HistoricalEvent{
		ID:        2,
		Category:  "war",
		Summary:   "Battle of Borodino",
		Year:      1812,
		Details:   "Napoleon's costliest day in Russia.",
		MediaPath: "borodino.jpg",
	}
}

func (s *ResponderTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestResponderTestSuite(t *testing.T) {
	suite.Run(t, new(ResponderTestSuite))
}

func (s *ResponderTestSuite) player(round models.RoundState) *models.Player {
	p := models.NewPlayer(s.req.PlayerID, s.testTime)
	p.Round = round
	return p
}

func (s *ResponderTestSuite) expectGetPlayer(p *models.Player) {
	s.mockGameService.EXPECT().
		GetPlayer(gomock.Any(), &game.GetPlayerInput{PlayerID: s.req.PlayerID}).
		Return(&game.GetPlayerOutput{Player: p}, nil)
}

func (s *ResponderTestSuite) TestNewResponderRange() {
	s.Equal(0, s.responder.minYear)
	s.Equal(2023, s.responder.maxYear)

	_, err := NewResponder(&ResponderConfig{
		GameService:      s.mockGameService,
		MessagingService: s.responder.messagingService,
		MinYear:          2000,
		MaxYear:          1000,
	})
	s.Error(err)

	_, err = NewResponder(&ResponderConfig{MessagingService: s.responder.messagingService})
	s.Error(err)
}

func (s *ResponderTestSuite) TestStartNewPlayer() {
	s.mockGameService.EXPECT().
		RegisterPlayer(gomock.Any(), &game.RegisterPlayerInput{PlayerID: s.req.PlayerID}).
		Return(&game.RegisterPlayerOutput{Player: s.player(models.Idle()), Created: true}, nil)

	reply, err := s.responder.Start(s.ctx, s.req)
	s.Require().NoError(err)
	s.Equal("Guess the Year", reply.Title)
	s.Contains(reply.Text, "Ada")
}

func (s *ResponderTestSuite) TestStartReturningPlayer() {
	s.mockGameService.EXPECT().
		RegisterPlayer(gomock.Any(), gomock.Any()).
		Return(&game.RegisterPlayerOutput{Player: s.player(models.Idle()), Created: false}, nil)

	reply, err := s.responder.Start(s.ctx, s.req)
	s.Require().NoError(err)
	s.Equal("Welcome back!", reply.Title)
}

func (s *ResponderTestSuite) TestPlayHidesAnswer() {
	s.mockGameService.EXPECT().
		StartRound(gomock.Any(), &game.StartRoundInput{PlayerID: s.req.PlayerID}).
		Return(&game.StartRoundOutput{Event: s.borodino, Player: s.player(models.InRound(2))}, nil)

	reply, err := s.responder.Play(s.ctx, s.req)
	s.Require().NoError(err)
	s.Equal("Battle of Borodino", reply.Text)
	s.NotEmpty(reply.Footer)
	s.Nil(reply.Media)
	s.Equal([]Field{{Name: "Category", Value: "war"}}, reply.Fields)

	embed := renderEmbed(reply)
	s.NotContains(embed.Description, "1812")
	s.NotContains(embed.Footer.Text, "1812")
}

func (s *ResponderTestSuite) TestPlayRegistersUnknownPlayer() {
	gomock.InOrder(
		s.mockGameService.EXPECT().
			StartRound(gomock.Any(), gomock.Any()).
			Return(nil, game.ErrPlayerNotFound),
		s.mockGameService.EXPECT().
			RegisterPlayer(gomock.Any(), &game.RegisterPlayerInput{PlayerID: s.req.PlayerID}).
			Return(&game.RegisterPlayerOutput{Player: s.player(models.Idle()), Created: true}, nil),
		s.mockGameService.EXPECT().
			StartRound(gomock.Any(), gomock.Any()).
			Return(&game.StartRoundOutput{Event: s.borodino, Player: s.player(models.InRound(2))}, nil),
	)

	reply, err := s.responder.Play(s.ctx, s.req)
	s.Require().NoError(err)
	s.Equal("Battle of Borodino", reply.Text)
}

func (s *ResponderTestSuite) TestPlayNoEvents() {
	s.mockGameService.EXPECT().
		StartRound(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrNoEventsAvailable)

	reply, err := s.responder.Play(s.ctx, s.req)
	s.Require().NoError(err)
	s.True(reply.IsError)
	s.True(reply.Ephemeral)
	s.NotEmpty(reply.Text)
}

func (s *ResponderTestSuite) TestGuessWhileIdle() {
	s.expectGetPlayer(s.player(models.Idle()))

	reply, err := s.responder.Guess(s.ctx, s.req, 1812)
	s.Require().NoError(err)
	s.Equal("We are not playing yet. Want to play? /play", reply.Text)
	s.False(reply.IsError)
}

func (s *ResponderTestSuite) TestGuessOutOfRangeNeverReachesGame() {
	s.expectGetPlayer(s.player(models.InRound(2)))

	reply, err := s.responder.Guess(s.ctx, s.req, 2024)
	s.Require().NoError(err)
	s.Equal("Send years from 0 to 2023.", reply.Text)
}

func (s *ResponderTestSuite) TestGuessWrong() {
	p := s.player(models.InRound(2))
	s.expectGetPlayer(p)

	after := p.Clone()
	after.Attempts = 1
	after.Score = -1
	s.mockGameService.EXPECT().
		SubmitGuess(gomock.Any(), &game.SubmitGuessInput{PlayerID: s.req.PlayerID, Year: 1700}).
		Return(&game.SubmitGuessOutput{Hint: game.HintLater, Player: after}, nil)

	reply, err := s.responder.Guess(s.ctx, s.req, 1700)
	s.Require().NoError(err)
	s.Equal("It happened later.", reply.Text)
	s.Nil(reply.Media)
}

func (s *ResponderTestSuite) TestGuessCorrectRevealsEvent() {
	p := s.player(models.InRound(2))
	s.expectGetPlayer(p)

	after := p.Clone()
	after.Round = models.Idle()
	after.Attempts = 1
	after.Score = 10
	after.MarkGuessed(2)
	s.mockGameService.EXPECT().
		SubmitGuess(gomock.Any(), gomock.Any()).
		Return(&game.SubmitGuessOutput{Hint: game.HintCorrect, ResolvedEvent: s.borodino, Player: after}, nil)

	reply, err := s.responder.Guess(s.ctx, s.req, 1812)
	s.Require().NoError(err)
	s.Contains(reply.Text, "1812 - Battle of Borodino.")
	s.Contains(reply.Fields, Field{Name: "Details", Value: "Napoleon's costliest day in Russia."})
	s.Contains(reply.Fields, Field{Name: "Score", Value: "10", Inline: true})
	s.Require().NotNil(reply.Media)
	s.Equal("borodino.jpg", reply.Media.Name)
}

func (s *ResponderTestSuite) TestSurrenderWithoutMedia() {
	event := *s.borodino
	event.MediaPath = "missing.jpg"
	event.Details = ""

	after := s.player(models.Idle())
	after.Score = -10
	s.mockGameService.EXPECT().
		Surrender(gomock.Any(), &game.SurrenderInput{PlayerID: s.req.PlayerID}).
		Return(&game.SurrenderOutput{Event: &event, Player: after}, nil)

	reply, err := s.responder.Surrender(s.ctx, s.req)
	s.Require().NoError(err)
	s.Equal("You gave up", reply.Title)
	s.Contains(reply.Text, "1812 - Battle of Borodino.")
	s.Nil(reply.Media)
	s.Equal([]Field{{Name: "Score", Value: "-10", Inline: true}}, reply.Fields)
}

func (s *ResponderTestSuite) TestSurrenderWhileIdle() {
	s.mockGameService.EXPECT().
		Surrender(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrNotInRound)

	reply, err := s.responder.Surrender(s.ctx, s.req)
	s.Require().NoError(err)
	s.Contains(reply.Text, "/play")
}

func (s *ResponderTestSuite) TestCancel() {
	s.mockGameService.EXPECT().
		Cancel(gomock.Any(), &game.CancelInput{PlayerID: s.req.PlayerID}).
		Return(&game.CancelOutput{Player: s.player(models.Idle())}, nil)

	reply, err := s.responder.Cancel(s.ctx, s.req)
	s.Require().NoError(err)
	s.Contains(reply.Text, "You left the game")
}

func (s *ResponderTestSuite) TestStatWithoutSolvedEvents() {
	p := s.player(models.Idle())
	p.Attempts = 7
	p.Score = -7
	s.expectGetPlayer(p)

	reply, err := s.responder.Stat(s.ctx, s.req)
	s.Require().NoError(err)
	s.Equal("Statistics for Ada", reply.Title)
	s.Equal("Score: -7\nTotal attempts: 7\nYears guessed: 0\nAverage attempts per answer: 0", reply.Text)
}

func (s *ResponderTestSuite) TestStatStoreUnavailable() {
	s.mockGameService.EXPECT().
		GetPlayer(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrStoreUnavailable)

	reply, err := s.responder.Stat(s.ctx, s.req)
	s.Require().NoError(err)
	s.True(reply.IsError)
}

func (s *ResponderTestSuite) TestTextDigitsAreGuesses() {
	s.expectGetPlayer(s.player(models.InRound(2)))

	reply, err := s.responder.Text(s.ctx, s.req, " 99999999999999999999999 ")
	s.Require().NoError(err)
	s.Equal("Send years from 0 to 2023.", reply.Text)
}

func (s *ResponderTestSuite) TestTextGuidance() {
	s.expectGetPlayer(s.player(models.InRound(2)))

	reply, err := s.responder.Text(s.ctx, s.req, "around 1800?")
	s.Require().NoError(err)
	s.Contains(reply.Text, "1998")

	s.expectGetPlayer(s.player(models.Idle()))

	reply, err = s.responder.Text(s.ctx, s.req, "hello")
	s.Require().NoError(err)
	s.Contains(reply.Text, "/help")
}

func (s *ResponderTestSuite) TestCommands() {
	commands := NewCommands(s.responder)

	var names []string
	for _, cmd := range commands {
		names = append(names, cmd.GetName())
	}
	s.Equal([]string{"start", "help", "play", "sur", "cancel", "stat", "guess"}, names)

	guess := commands[len(commands)-1]
	s.Require().Len(guess.GetCommand().Options, 1)
	s.Equal(float64(2023), guess.GetCommand().Options[0].MaxValue)

	s.expectGetPlayer(s.player(models.Idle()))
	reply, err := guess.Reply(s.ctx, s.req, discordgo.ApplicationCommandInteractionData{
		Name: "guess",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "year", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(1812)},
		},
	})
	s.Require().NoError(err)
	s.Contains(reply.Text, "/play")
}

func (s *ResponderTestSuite) TestHelpCommand() {
	commands := NewCommands(s.responder)

	reply, err := commands[1].Reply(s.ctx, s.req, discordgo.ApplicationCommandInteractionData{Name: "help"})
	s.Require().NoError(err)
	s.Equal("Rules", reply.Title)
	s.Contains(reply.Text, "between 0 and 2023")
}

func (s *ResponderTestSuite) TestZeroRangeIsKept() {
	responder, err := NewResponder(&ResponderConfig{
		GameService:      s.mockGameService,
		MessagingService: s.responder.messagingService,
		MinYear:          0,
		MaxYear:          0,
	})
	s.Require().NoError(err)

	s.mockGameService.EXPECT().
		GetPlayer(gomock.Any(), gomock.Any()).
		Return(&game.GetPlayerOutput{Player: s.player(models.InRound(2))}, nil)

	reply, err := responder.Guess(s.ctx, s.req, 1)
	s.Require().NoError(err)
	s.Equal("Send years from 0 to 0.", reply.Text)
}
