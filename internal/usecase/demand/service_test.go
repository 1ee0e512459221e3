package demand

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/campushare/notehub/internal/domain"
	"github.com/campushare/notehub/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.Register()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockLogs struct {
	inserted  bool
	err       error
	called    bool
	lastQuery string
	lastTopic string
	lastUser  string
	lastDay   time.Time
}

func (m *mockLogs) InsertLog(_ context.Context, query, topicKey, userID string, day time.Time) (bool, error) {
	m.called = true
	m.lastQuery = query
	m.lastTopic = topicKey
	m.lastUser = userID
	m.lastDay = day
	return m.inserted, m.err
}

type mockChallenges struct {
	outcome    domain.DemandOutcome
	upsertErr  error
	active     []domain.Challenge
	listErr    error
	fulfilled  bool
	fulfillErr error
	lastTopic  string
	lastWinner string
	upserted   bool
}

func (m *mockChallenges) UpsertChallenge(_ context.Context, topicKey string) (domain.DemandOutcome, error) {
	m.upserted = true
	m.lastTopic = topicKey
	return m.outcome, m.upsertErr
}

func (m *mockChallenges) ListActive(_ context.Context) ([]domain.Challenge, error) {
	return m.active, m.listErr
}

func (m *mockChallenges) Fulfill(_ context.Context, topicKey, winnerNoteID string) (bool, error) {
	m.lastTopic = topicKey
	m.lastWinner = winnerNoteID
	return m.fulfilled, m.fulfillErr
}

// --- Tests ---

func TestRecordMiss_FirstMiss(t *testing.T) {
	logs := &mockLogs{inserted: true}
	challenges := &mockChallenges{
		outcome: domain.DemandOutcome{Created: true, RewardCredits: 50, DemandCount: 1},
	}
	svc := New(logs, challenges)

	topicKey, out, err := svc.RecordMiss(context.Background(), "Notes for OS", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topicKey != "notes os" {
		t.Errorf("topic key = %q, want %q", topicKey, "notes os")
	}
	if !out.Created || out.RewardCredits != 50 || out.DemandCount != 1 {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if logs.lastQuery != "Notes for OS" {
		t.Errorf("log query = %q, expected trimmed raw text", logs.lastQuery)
	}
	if logs.lastTopic != "notes os" || challenges.lastTopic != "notes os" {
		t.Errorf("topic key mismatch: log %q, challenge %q", logs.lastTopic, challenges.lastTopic)
	}
}

func TestRecordMiss_RepeatMiss(t *testing.T) {
	logs := &mockLogs{inserted: true}
	challenges := &mockChallenges{
		outcome: domain.DemandOutcome{Created: false, RewardCredits: 60, DemandCount: 2},
	}
	svc := New(logs, challenges)

	_, out, err := svc.RecordMiss(context.Background(), "os notes", "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Created {
		t.Error("second miss must not report a created challenge")
	}
	if out.RewardCredits != 60 || out.DemandCount != 2 {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestRecordMiss_DuplicateLogAbsorbed(t *testing.T) {
	logs := &mockLogs{inserted: false} // same user/topic/day already logged
	challenges := &mockChallenges{
		outcome: domain.DemandOutcome{RewardCredits: 70, DemandCount: 3},
	}
	svc := New(logs, challenges)

	_, out, err := svc.RecordMiss(context.Background(), "os notes", "u1")
	if err != nil {
		t.Fatalf("duplicate log must not surface an error, got %v", err)
	}
	if !challenges.upserted {
		t.Fatal("challenge update must happen despite the duplicate log")
	}
	if out.DemandCount != 3 {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestRecordMiss_LogFailureAbsorbed(t *testing.T) {
	logs := &mockLogs{err: errors.New("db write failed")}
	challenges := &mockChallenges{
		outcome: domain.DemandOutcome{Created: true, RewardCredits: 50, DemandCount: 1},
	}
	svc := New(logs, challenges)

	_, _, err := svc.RecordMiss(context.Background(), "os notes", "u1")
	if err != nil {
		t.Fatalf("log failure must not surface an error, got %v", err)
	}
	if !challenges.upserted {
		t.Fatal("challenge update must happen despite the log failure")
	}
}

func TestRecordMiss_ChallengeFailurePropagates(t *testing.T) {
	logs := &mockLogs{inserted: true}
	challenges := &mockChallenges{upsertErr: errors.New("db down")}
	svc := New(logs, challenges)

	if _, _, err := svc.RecordMiss(context.Background(), "os notes", "u1"); err == nil {
		t.Fatal("expected error when challenge upsert fails")
	}
}

func TestRecordMiss_EmptyTopicKey(t *testing.T) {
	logs := &mockLogs{inserted: true}
	challenges := &mockChallenges{
		outcome: domain.DemandOutcome{Created: true, RewardCredits: 50, DemandCount: 1},
	}
	svc := New(logs, challenges)

	topicKey, _, err := svc.RecordMiss(context.Background(), "for the and of", "u1")
	if err != nil {
		t.Fatalf("empty topic key must still be recorded, got %v", err)
	}
	if topicKey != "" {
		t.Errorf("topic key = %q, want empty", topicKey)
	}
	if challenges.lastTopic != "" {
		t.Errorf("challenge topic = %q, want empty", challenges.lastTopic)
	}
}

func TestRecordMiss_LogDateIsUTCDay(t *testing.T) {
	logs := &mockLogs{inserted: true}
	challenges := &mockChallenges{outcome: domain.DemandOutcome{Created: true}}
	fixed := time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC)
	svc := New(logs, challenges).WithClock(func() time.Time { return fixed })

	if _, _, err := svc.RecordMiss(context.Background(), "os notes", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !logs.lastDay.Equal(want) {
		t.Errorf("log day = %v, want %v", logs.lastDay, want)
	}
}

func TestFulfillByTitle(t *testing.T) {
	challenges := &mockChallenges{fulfilled: true}
	svc := New(&mockLogs{}, challenges)

	ok, err := svc.FulfillByTitle(context.Background(), "Notes for OS", "n9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected fulfillment")
	}
	if challenges.lastTopic != "notes os" || challenges.lastWinner != "n9" {
		t.Errorf("fulfill called with (%q, %q)", challenges.lastTopic, challenges.lastWinner)
	}
}

func TestFulfillByTitle_EmptyTopicSkipped(t *testing.T) {
	challenges := &mockChallenges{fulfilled: true}
	svc := New(&mockLogs{}, challenges)

	ok, err := svc.FulfillByTitle(context.Background(), "...", "n9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("empty topic must not fulfill anything")
	}
}
