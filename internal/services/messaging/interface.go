package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetWelcomeMessage returns the greeting sent on /start
	GetWelcomeMessage(ctx context.Context, input *GetWelcomeMessageInput) (*GetWelcomeMessageOutput, error)

	// GetHelpMessage returns the rules and the list of commands
	GetHelpMessage(ctx context.Context, input *GetHelpMessageInput) (*GetHelpMessageOutput, error)

	// GetRoundStartedMessage returns the prompt shown with a new event
	GetRoundStartedMessage(ctx context.Context, input *GetRoundStartedMessageInput) (*GetRoundStartedMessageOutput, error)

	// GetGuessResultMessage returns the reply for a scored guess
	GetGuessResultMessage(ctx context.Context, input *GetGuessResultMessageInput) (*GetGuessResultMessageOutput, error)

	// GetSurrenderMessage returns the reply shown above a revealed answer
	GetSurrenderMessage(ctx context.Context, input *GetSurrenderMessageInput) (*GetSurrenderMessageOutput, error)

	// GetCancelMessage returns the reply for leaving a round
	GetCancelMessage(ctx context.Context, input *GetCancelMessageInput) (*GetCancelMessageOutput, error)

	// GetGuidanceMessage returns the reply for text that is neither a command nor a guess
	GetGuidanceMessage(ctx context.Context, input *GetGuidanceMessageInput) (*GetGuidanceMessageOutput, error)

	// GetStatsMessage returns the player's statistics
	GetStatsMessage(ctx context.Context, input *GetStatsMessageInput) (*GetStatsMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
