package note

import (
	"context"

	"github.com/campushare/notehub/internal/domain"
)

// Repository persists note rows and counters.
type Repository interface {
	Create(ctx context.Context, n *domain.Note) error
	SetEmbedding(ctx context.Context, id string, vec []float32) error
	GetByID(ctx context.Context, id string) (domain.Note, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
	Upvote(ctx context.Context, id string) (int, error)
}

// BlobStore holds the uploaded file bytes.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// Embedder vectorizes note text for indexing.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// ChallengeFulfiller closes a matching demand challenge once a note
// satisfying it is uploaded.
type ChallengeFulfiller interface {
	FulfillByTitle(ctx context.Context, title, noteID string) (bool, error)
}
