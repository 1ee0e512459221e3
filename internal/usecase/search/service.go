package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/campushare/notehub/internal/domain"
	domsearch "github.com/campushare/notehub/internal/domain/search"
	"github.com/campushare/notehub/internal/metrics"
)

// Outcome is the result of one search: either a hit with ranked notes or
// a miss with the recorded demand signal.
type Outcome struct {
	Hit      bool
	Results  []domsearch.RankedNote
	TopicKey string
	Demand   domain.DemandOutcome
}

// Service orchestrates a search request: embed, retrieve, rank, and on a
// miss hand the query to the demand recorder. The service itself is
// stateless; every call is an independent unit of work.
type Service struct {
	retriever Retriever
	embed     Embedder
	demand    DemandRecorder
	topK      int
}

// New creates a search service.
func New(retriever Retriever, embed Embedder, demand DemandRecorder, topK int) *Service {
	return &Service{retriever: retriever, embed: embed, demand: demand, topK: topK}
}

// Search runs a semantic query for the given user. A blank query fails
// with domain.ErrInvalidQuery before any side effect.
func (s *Service) Search(ctx context.Context, query, userID string) (Outcome, error) {
	if strings.TrimSpace(query) == "" {
		return Outcome{}, domain.ErrInvalidQuery
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return Outcome{}, fmt.Errorf("vectorize query: %w", err)
	}

	candidates, err := s.retriever.TopK(ctx, embResult.Embedding, s.topK)
	if err != nil {
		return Outcome{}, fmt.Errorf("retrieve candidates: %w", domain.ErrRetrievalUnavailable)
	}

	results := rank(candidates)
	if len(results) > 0 {
		metrics.SearchOutcomesTotal.WithLabelValues("hit").Inc()
		metrics.SearchCandidatesReturned.Observe(float64(len(results)))
		return Outcome{Hit: true, Results: results}, nil
	}

	topicKey, demand, err := s.demand.RecordMiss(ctx, query, userID)
	if err != nil {
		return Outcome{}, fmt.Errorf("record miss: %w", err)
	}

	metrics.SearchOutcomesTotal.WithLabelValues("miss").Inc()
	return Outcome{TopicKey: topicKey, Demand: demand}, nil
}
