// Package demand turns unmet searches into persistent content-demand
// signals: an audit log entry plus a per-topic challenge with an
// escalating reward.
package demand

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campushare/notehub/internal/domain"
	"github.com/campushare/notehub/internal/domain/topic"
	"github.com/campushare/notehub/internal/logger"
	"github.com/campushare/notehub/internal/metrics"
)

// Service records misses and manages challenge lifecycle.
type Service struct {
	logs       LogStore
	challenges ChallengeStore
	now        func() time.Time
}

// New creates a demand service.
func New(logs LogStore, challenges ChallengeStore) *Service {
	return &Service{logs: logs, challenges: challenges, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordMiss logs the unmet query and updates the topic's challenge.
// The log write is best-effort: any failure there is swallowed (logged)
// and never blocks the challenge update. The challenge upsert is the
// only step whose failure propagates. Returns the topic key and the
// challenge state after the update.
func (s *Service) RecordMiss(ctx context.Context, query, userID string) (string, domain.DemandOutcome, error) {
	topicKey := topic.Normalize(query)

	day := s.now().UTC().Truncate(24 * time.Hour)
	inserted, err := s.logs.InsertLog(ctx, strings.TrimSpace(query), topicKey, userID, day)
	switch {
	case err != nil:
		// Audit record only; the demand signal still counts.
		logger.FromContext(ctx).Warn("demand log insert failed",
			zap.String("topic_key", topicKey), zap.Error(err))
	case !inserted:
		metrics.DemandLogConflictsTotal.Inc()
		logger.FromContext(ctx).Debug("duplicate demand log absorbed",
			zap.String("topic_key", topicKey), zap.String("user_id", userID))
	}

	outcome, err := s.challenges.UpsertChallenge(ctx, topicKey)
	if err != nil {
		return "", domain.DemandOutcome{}, fmt.Errorf("upsert challenge %q: %w", topicKey, err)
	}

	if outcome.Created {
		metrics.ChallengesCreatedTotal.Inc()
		logger.FromContext(ctx).Info("challenge opened",
			zap.String("topic_key", topicKey),
			zap.Int("reward_credits", outcome.RewardCredits))
	}

	return topicKey, outcome, nil
}

// ListActive returns the open challenges for the challenges API.
func (s *Service) ListActive(ctx context.Context) ([]domain.Challenge, error) {
	challenges, err := s.challenges.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}
	return challenges, nil
}

// FulfillByTitle closes an active challenge whose topic matches the
// normalized note title, marking the note as the winner. Called from the
// upload flow once a note becomes searchable.
func (s *Service) FulfillByTitle(ctx context.Context, title, noteID string) (bool, error) {
	topicKey := topic.Normalize(title)
	if topicKey == "" {
		return false, nil
	}

	fulfilled, err := s.challenges.Fulfill(ctx, topicKey, noteID)
	if err != nil {
		return false, fmt.Errorf("fulfill challenge %q: %w", topicKey, err)
	}
	if fulfilled {
		logger.FromContext(ctx).Info("challenge fulfilled",
			zap.String("topic_key", topicKey), zap.String("winner_note_id", noteID))
	}
	return fulfilled, nil
}
