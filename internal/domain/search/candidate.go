// Package search holds the value types flowing between the candidate
// retriever, the ranker, and the transport layer.
package search

// Candidate is a note returned by the vector retriever before ranking.
// Similarity is 1 - cosine_distance between the query vector and the
// note's embedding, so higher means more semantically related.
type Candidate struct {
	ID            string
	Title         string
	Subject       string
	Similarity    float64
	ViewCount     int
	Upvotes       int
	DownloadCount int
}

// RankedNote is one entry of a successful search result.
type RankedNote struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Subject         string  `json:"subject"`
	Similarity      float64 `json:"similarity"`
	EngagementScore float64 `json:"engagement_score"`
	FinalScore      float64 `json:"final_score"`
	Upvotes         int     `json:"upvotes"`
	Views           int     `json:"views"`
	Downloads       int     `json:"downloads"`
}
