// Package demand persists unmet-search signals: append-only demand logs
// and per-topic challenge records.
package demand

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushare/notehub/internal/domain"
)

// Repo implements demand-log and challenge persistence over pgx.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a demand repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// InsertLog appends a demand-log row for (user, topic, day). A duplicate
// is absorbed at the store level and reported via the returned flag, not
// as an error.
func (r *Repo) InsertLog(ctx context.Context, query, topicKey, userID string, day time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO demand_logs (query, topic_key, user_id, search_date)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, topic_key, search_date) DO NOTHING`,
		query, topicKey, userID, day,
	)
	if err != nil {
		return false, fmt.Errorf("insert demand log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertChallenge is the atomic find-or-create for a topic's challenge.
// A single statement either opens a new challenge (base reward, count 1)
// or, when an active one exists, bumps its count and reward — so two
// concurrent misses on a never-seen topic can never produce two rows or
// lose an increment. The conditional update skips inactive (fulfilled)
// challenges; those absorb further misses unchanged.
func (r *Repo) UpsertChallenge(ctx context.Context, topicKey string) (domain.DemandOutcome, error) {
	var out domain.DemandOutcome
	err := r.pool.QueryRow(ctx,
		`INSERT INTO challenges (topic_key, reward_credits, demand_count, is_active)
		 VALUES ($1, $2, 1, TRUE)
		 ON CONFLICT (topic_key) DO UPDATE
		 SET demand_count   = challenges.demand_count + 1,
		     reward_credits = challenges.reward_credits + $3
		 WHERE challenges.is_active
		 RETURNING demand_count, reward_credits, (xmax = 0) AS created`,
		topicKey, domain.BaseReward, domain.RewardIncrement,
	).Scan(&out.DemandCount, &out.RewardCredits, &out.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Challenge exists but is fulfilled; report its final state.
			return r.challengeState(ctx, topicKey)
		}
		return domain.DemandOutcome{}, fmt.Errorf("upsert challenge: %w", err)
	}
	return out, nil
}

func (r *Repo) challengeState(ctx context.Context, topicKey string) (domain.DemandOutcome, error) {
	var out domain.DemandOutcome
	err := r.pool.QueryRow(ctx,
		`SELECT demand_count, reward_credits FROM challenges WHERE topic_key = $1`,
		topicKey,
	).Scan(&out.DemandCount, &out.RewardCredits)
	if err != nil {
		return domain.DemandOutcome{}, fmt.Errorf("challenge state: %w", err)
	}
	return out, nil
}

// ListActive returns open challenges, most demanded first.
func (r *Repo) ListActive(ctx context.Context) ([]domain.Challenge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic_key, reward_credits, demand_count, is_active, created_at
		 FROM challenges
		 WHERE is_active
		 ORDER BY demand_count DESC, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	var out []domain.Challenge
	for rows.Next() {
		var c domain.Challenge
		if err := rows.Scan(&c.ID, &c.TopicKey, &c.RewardCredits, &c.DemandCount,
			&c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("challenge rows: %w", err)
	}
	return out, nil
}

// Fulfill closes the active challenge for a topic and records the winning
// note. Returns false when no active challenge matches.
func (r *Repo) Fulfill(ctx context.Context, topicKey, winnerNoteID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE challenges
		 SET is_active = FALSE, winner_note_id = $2
		 WHERE topic_key = $1 AND is_active`,
		topicKey, winnerNoteID,
	)
	if err != nil {
		return false, fmt.Errorf("fulfill challenge: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
