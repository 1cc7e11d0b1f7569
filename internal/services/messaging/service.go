package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/guessyear/internal/dice"
	"github.com/KirkDiggler/guessyear/internal/services/game"
)

// service implements the Service interface
type service struct {
	// Roller picks one of several lines for the same reply
	roller *dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var roller *dice.Roller
	if config != nil {
		roller = config.Roller
	}

	if roller == nil {
		roller = dice.New(nil)
	}

	return &service{
		roller: roller,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.roller.Roll(len(messages))-1]
}

// GetWelcomeMessage returns the greeting sent on /start
func (s *service) GetWelcomeMessage(ctx context.Context, input *GetWelcomeMessageInput) (*GetWelcomeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName
	if name == "" {
		name = "there"
	}

	if input.Returning {
		return &GetWelcomeMessageOutput{
			Title:   "Welcome back!",
			Message: fmt.Sprintf("Good to see you again, %s! Your score is right where you left it. Send /play to continue.", name),
		}, nil
	}

	return &GetWelcomeMessageOutput{
		Title: "Guess the Year",
		Message: fmt.Sprintf("Hi %s!\nShall we play \"Guess the Year\"?\n\n"+
			"Send /help to read the rules and the list of commands.", name),
	}, nil
}

// GetHelpMessage returns the rules and the list of commands
func (s *service) GetHelpMessage(ctx context.Context, input *GetHelpMessageInput) (*GetHelpMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var b strings.Builder
	b.WriteString("I name a historical event and you tell me the year it happened.\n\n")
	fmt.Fprintf(&b, "Answer with a year between %d and %d, for example: 1998\n\n", input.MinYear, input.MaxYear)
	b.WriteString("A correct answer is worth 10 points, every miss costs 1 and giving up costs 10.\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("/play - start playing\n")
	b.WriteString("/sur - give up and see the answer\n")
	b.WriteString("/cancel - leave the current round\n")
	b.WriteString("/stat - show your statistics\n")
	b.WriteString("/help - rules and commands\n\n")
	b.WriteString("Let's play?")

	return &GetHelpMessageOutput{
		Title:   "Rules",
		Message: b.String(),
	}, nil
}

// GetRoundStartedMessage returns the prompt shown with a new event
func (s *service) GetRoundStartedMessage(ctx context.Context, input *GetRoundStartedMessageInput) (*GetRoundStartedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	prompts := []string{
		"In what year did this happen?",
		"Name the year!",
		"When was it? Send me the year.",
		"Your move, historian. Which year?",
	}

	message := s.pick(prompts)
	if input.CatalogReset {
		message = "You have solved every event I know, so we are starting over from the top.\n\n" + message
	}

	return &GetRoundStartedMessageOutput{
		Title:   "Guess the Year",
		Message: message,
	}, nil
}

// GetGuessResultMessage returns the reply for a scored guess
func (s *service) GetGuessResultMessage(ctx context.Context, input *GetGuessResultMessageInput) (*GetGuessResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch input.Hint {
	case game.HintCorrect:
		titles := []string{
			"You got it!",
			"Correct!",
			"Spot on!",
			"Bullseye!",
		}

		messages := []string{
			"You guessed it, hooray!",
			"History buff detected! +10 points.",
			"Exactly right. The archives approve.",
			"Nailed it! Send /play for the next one.",
			"That's the year! Your history teacher would be proud.",
		}

		return &GetGuessResultMessageOutput{
			Title:   s.pick(titles),
			Message: s.pick(messages),
		}, nil
	case game.HintEarlier:
		return &GetGuessResultMessageOutput{
			Title:   "Not quite",
			Message: "It happened earlier.",
		}, nil
	case game.HintLater:
		return &GetGuessResultMessageOutput{
			Title:   "Not quite",
			Message: "It happened later.",
		}, nil
	default:
		return nil, fmt.Errorf("unknown hint %q", input.Hint)
	}
}

// GetSurrenderMessage returns the reply shown above a revealed answer
func (s *service) GetSurrenderMessage(ctx context.Context, input *GetSurrenderMessageInput) (*GetSurrenderMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	messages := []string{
		"No shame in it. Here is the answer:",
		"History wins this round. The answer was:",
		"Giving up costs 10 points, but at least now you know:",
	}

	return &GetSurrenderMessageOutput{
		Title:   "You gave up",
		Message: s.pick(messages),
	}, nil
}

// GetCancelMessage returns the reply for leaving a round
func (s *service) GetCancelMessage(ctx context.Context, input *GetCancelMessageInput) (*GetCancelMessageOutput, error) {
	return &GetCancelMessageOutput{
		Message: "You left the game. If you want to play again, just say so. /play",
	}, nil
}

// GetGuidanceMessage returns the reply for text that is neither a command nor a guess
func (s *service) GetGuidanceMessage(ctx context.Context, input *GetGuidanceMessageInput) (*GetGuidanceMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.InRound {
		return &GetGuidanceMessageOutput{
			Message: "We are playing right now. Please send the year as a number, like 1998.",
		}, nil
	}

	return &GetGuidanceMessageOutput{
		Message: "I only play by the rules. Send /help to read them.",
	}, nil
}

// GetStatsMessage returns the player's statistics
func (s *service) GetStatsMessage(ctx context.Context, input *GetStatsMessageInput) (*GetStatsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := "Your statistics"
	if input.PlayerName != "" {
		title = fmt.Sprintf("Statistics for %s", input.PlayerName)
	}

	return &GetStatsMessageOutput{
		Title: title,
		Message: fmt.Sprintf("Score: %d\nTotal attempts: %d\nYears guessed: %d\nAverage attempts per answer: %d",
			input.Score, input.Attempts, input.Solved, input.AverageAttempts),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string

	switch input.ErrorType {
	case ErrorTypeNotInRound:
		messages = []string{
			"We are not playing yet. Want to play? /play",
		}
	case ErrorTypeOutOfRange:
		messages = []string{
			fmt.Sprintf("Send years from %d to %d.", input.MinYear, input.MaxYear),
		}
	case ErrorTypeNoEvents:
		messages = []string{
			"I have no events to ask about yet. Come back later!",
			"The history books are empty right now. Try again later.",
		}
	case ErrorTypeUnavailable:
		messages = []string{
			"I can't reach my records right now. Try again in a moment.",
			"My archive is taking a nap. Please try again shortly.",
		}
	default:
		messages = []string{
			"Something went wrong! Try again later.",
			"Oops! I lost my place in the history book. Try again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
	}, nil
}
