package search

import (
	"math"
	"testing"

	domsearch "github.com/campushare/notehub/internal/domain/search"
)

const tolerance = 1e-9

func TestEngagementScore(t *testing.T) {
	// ln(10) + 2*1 + 0.5*ln(4)
	got := engagementScore(9, 1, 3)
	want := math.Log(10) + 2 + 0.5*math.Log(4)
	if math.Abs(got-want) > tolerance {
		t.Errorf("engagementScore(9,1,3) = %v, want %v", got, want)
	}

	if got := engagementScore(0, 0, 0); got != 0 {
		t.Errorf("engagementScore(0,0,0) = %v, want 0", got)
	}
}

func TestRank_ScoreFormula(t *testing.T) {
	candidates := []domsearch.Candidate{
		{ID: "n1", Similarity: 0.5, ViewCount: 9, Upvotes: 1, DownloadCount: 3},
	}

	ranked := rank(candidates)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 result, got %d", len(ranked))
	}

	engagement := math.Log(10) + 2 + 0.5*math.Log(4)
	wantFinal := 0.7*0.5 + 0.3*engagement

	r := ranked[0]
	if math.Abs(r.EngagementScore-engagement) > tolerance {
		t.Errorf("engagement = %v, want %v", r.EngagementScore, engagement)
	}
	if math.Abs(r.FinalScore-wantFinal) > tolerance {
		t.Errorf("final = %v, want %v", r.FinalScore, wantFinal)
	}
	// sanity against the worked example: final ~ 1.849
	if math.Abs(r.FinalScore-1.849) > 0.001 {
		t.Errorf("final = %v, expected ~1.849", r.FinalScore)
	}
}

func TestRank_SimilarityFloor(t *testing.T) {
	candidates := []domsearch.Candidate{
		{ID: "relevant", Similarity: 0.31},
		{ID: "borderline", Similarity: 0.3},
		{ID: "viral but irrelevant", Similarity: 0.29, ViewCount: 1000000, Upvotes: 5000},
		{ID: "garbage", Similarity: -0.4},
	}

	ranked := rank(candidates)
	for _, r := range ranked {
		if r.Similarity < 0.3 {
			t.Errorf("result %q has similarity %v below floor", r.ID, r.Similarity)
		}
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 results above floor, got %d", len(ranked))
	}
}

func TestRank_OrderingDescending(t *testing.T) {
	candidates := []domsearch.Candidate{
		{ID: "a", Similarity: 0.4},
		{ID: "b", Similarity: 0.9, Upvotes: 10},
		{ID: "c", Similarity: 0.5, ViewCount: 100},
		{ID: "d", Similarity: 0.35, DownloadCount: 2},
	}

	ranked := rank(candidates)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].FinalScore > ranked[i-1].FinalScore {
			t.Errorf("ordering violated at %d: %v > %v", i, ranked[i].FinalScore, ranked[i-1].FinalScore)
		}
	}
}

func TestRank_TieBreakByID(t *testing.T) {
	candidates := []domsearch.Candidate{
		{ID: "z", Similarity: 0.5},
		{ID: "a", Similarity: 0.5},
	}

	ranked := rank(candidates)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ranked))
	}
	if ranked[0].ID != "a" || ranked[1].ID != "z" {
		t.Errorf("tie break by id failed: got %s, %s", ranked[0].ID, ranked[1].ID)
	}
}

func TestRank_EmptyAndAllFiltered(t *testing.T) {
	if got := rank(nil); len(got) != 0 {
		t.Errorf("rank(nil) = %v, want empty", got)
	}

	candidates := []domsearch.Candidate{
		{ID: "x", Similarity: 0.1},
		{ID: "y", Similarity: 0.2},
	}
	if got := rank(candidates); len(got) != 0 {
		t.Errorf("expected all candidates filtered, got %d", len(got))
	}
}
