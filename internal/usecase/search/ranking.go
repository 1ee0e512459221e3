package search

import (
	"math"
	"sort"

	domsearch "github.com/campushare/notehub/internal/domain/search"
)

// Ranking constants. A candidate must clear the similarity floor before
// engagement can matter at all: popularity never rescues an irrelevant
// match. Upvotes are scarce deliberate signals and weigh linearly;
// views and downloads are unbounded, so they are log-dampened.
const (
	similarityThreshold = 0.3
	similarityWeight    = 0.7
	engagementWeight    = 0.3
	upvoteWeight        = 2.0
	downloadWeight      = 0.5
)

// engagementScore computes the popularity proxy for one candidate.
func engagementScore(views, upvotes, downloads int) float64 {
	return math.Log(1+float64(views)) +
		upvoteWeight*float64(upvotes) +
		downloadWeight*math.Log(1+float64(downloads))
}

// rank filters candidates below the similarity floor, scores the rest,
// and orders them by final score descending. Ties break ascending by note
// id so the ordering is reproducible. An empty return value means the
// search is a miss.
func rank(candidates []domsearch.Candidate) []domsearch.RankedNote {
	ranked := make([]domsearch.RankedNote, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity < similarityThreshold {
			continue
		}

		engagement := engagementScore(c.ViewCount, c.Upvotes, c.DownloadCount)
		ranked = append(ranked, domsearch.RankedNote{
			ID:              c.ID,
			Title:           c.Title,
			Subject:         c.Subject,
			Similarity:      c.Similarity,
			EngagementScore: engagement,
			FinalScore:      similarityWeight*c.Similarity + engagementWeight*engagement,
			Upvotes:         c.Upvotes,
			Views:           c.ViewCount,
			Downloads:       c.DownloadCount,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}
