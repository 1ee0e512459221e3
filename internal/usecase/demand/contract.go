package demand

import (
	"context"
	"time"

	"github.com/campushare/notehub/internal/domain"
)

// LogStore appends demand-log rows. A duplicate (user, topic, day) is
// absorbed by the store and reported via the inserted flag.
type LogStore interface {
	InsertLog(ctx context.Context, query, topicKey, userID string, day time.Time) (inserted bool, err error)
}

// ChallengeStore maintains per-topic challenge records.
type ChallengeStore interface {
	UpsertChallenge(ctx context.Context, topicKey string) (domain.DemandOutcome, error)
	ListActive(ctx context.Context) ([]domain.Challenge, error)
	Fulfill(ctx context.Context, topicKey, winnerNoteID string) (bool, error)
}
