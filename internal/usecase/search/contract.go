package search

import (
	"context"

	"github.com/campushare/notehub/internal/domain"
	domsearch "github.com/campushare/notehub/internal/domain/search"
)

// Retriever returns the k nearest public candidates to a query vector.
type Retriever interface {
	TopK(ctx context.Context, vec []float32, k int) ([]domsearch.Candidate, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// DemandRecorder converts an unmet query into a demand signal.
type DemandRecorder interface {
	RecordMiss(ctx context.Context, query, userID string) (string, domain.DemandOutcome, error)
}
