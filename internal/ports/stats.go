package ports

import "context"

// MatchResult records the outcome of one finished solo game.
type MatchResult struct {
	UserID     string
	Difficulty string
	Won        bool
}

// Record is a user's accumulated win/loss tally.
type Record struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
}

// StatsPort persists per-user game outcomes.
type StatsPort interface {
	// RecordResult folds one result into the user's record.
	RecordResult(ctx context.Context, result MatchResult) error

	// GetRecord returns the user's current record; a user with no history
	// gets a zero record, not an error.
	GetRecord(ctx context.Context, userID string) (Record, error)
}
