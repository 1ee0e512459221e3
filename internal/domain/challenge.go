package domain

import "time"

// Reward schedule for content-demand challenges. A challenge opens at the
// base reward and gains the increment on every further unmet search for
// its topic.
const (
	BaseReward      = 50
	RewardIncrement = 10
)

// Challenge is a persistent incentive record for unmet content demand,
// unique per topic key. It is created by the first miss, grown by later
// misses, and closed by an upload that satisfies the topic.
type Challenge struct {
	ID            string    `json:"id"`
	TopicKey      string    `json:"topic_key"`
	RewardCredits int       `json:"reward_credits"`
	DemandCount   int       `json:"demand_count"`
	IsActive      bool      `json:"is_active"`
	WinnerNoteID  string    `json:"winner_note_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DemandLog is one unmet-search event, unique per (user, topic, day).
// It is an audit trail, not a correctness-critical record: insert
// conflicts are absorbed.
type DemandLog struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	TopicKey   string    `json:"topic_key"`
	UserID     string    `json:"user_id"`
	SearchDate time.Time `json:"search_date"`
}

// DemandOutcome reports the effect of recording a miss: whether a new
// challenge was opened and the challenge state after the update.
type DemandOutcome struct {
	Created       bool `json:"challenge_created"`
	RewardCredits int  `json:"reward_credits"`
	DemandCount   int  `json:"demand_count"`
}
