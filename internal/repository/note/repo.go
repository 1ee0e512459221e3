// Package note persists uploaded notes and serves vector candidate
// retrieval over pgvector.
package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushare/notehub/internal/domain"
	"github.com/campushare/notehub/internal/domain/search"
)

// Repo implements note persistence and vector retrieval over pgx.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a note row. The embedding is set separately once the
// provider call succeeds; until then the note is not searchable.
func (r *Repo) Create(ctx context.Context, n *domain.Note) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, subject, object_key, content_type, file_size, is_private)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		n.UserID, n.Title, n.Subject, n.ObjectKey, n.ContentType, n.FileSize, n.IsPrivate,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// SetEmbedding stores the note's embedding vector, making it retrievable.
func (r *Repo) SetEmbedding(ctx context.Context, id string, vec []float32) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notes SET embedding = $2::vector WHERE id = $1`,
		id, formatVector(vec),
	)
	if err != nil {
		return fmt.Errorf("set embedding: %w", err)
	}
	return nil
}

// GetByID returns a note by id.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Note, error) {
	var n domain.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, subject, object_key, content_type, file_size,
		        is_private, view_count, download_count, upvotes, created_at
		 FROM notes WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Subject, &n.ObjectKey, &n.ContentType,
		&n.FileSize, &n.IsPrivate, &n.ViewCount, &n.DownloadCount, &n.Upvotes, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, fmt.Errorf("note by id: %w", domain.ErrNotFound)
		}
		return domain.Note{}, fmt.Errorf("note by id: %w", err)
	}
	return n, nil
}

// IncrementViews bumps view_count in a single atomic statement.
func (r *Repo) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, id, "view_count")
}

// IncrementDownloads bumps download_count in a single atomic statement.
func (r *Repo) IncrementDownloads(ctx context.Context, id string) error {
	return r.increment(ctx, id, "download_count")
}

func (r *Repo) increment(ctx context.Context, id, column string) error {
	// column comes from a fixed caller set, never user input
	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE notes SET %s = %s + 1 WHERE id = $1`, column, column),
		id,
	)
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment %s: %w", column, domain.ErrNotFound)
	}
	return nil
}

// Upvote increments the upvote counter and returns the new total.
func (r *Repo) Upvote(ctx context.Context, id string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes`,
		id,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("upvote: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("upvote: %w", err)
	}
	return total, nil
}

// TopK returns the k nearest public notes to the query vector, ordered by
// cosine distance. Similarity is 1 - distance; notes without an embedding
// are never candidates.
func (r *Repo) TopK(ctx context.Context, vec []float32, k int) ([]search.Candidate, error) {
	lit := formatVector(vec)
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, subject,
		        1 - (embedding <=> $1::vector) AS similarity,
		        view_count, upvotes, download_count
		 FROM notes
		 WHERE is_private = FALSE AND embedding IS NOT NULL
		 ORDER BY embedding <=> $1::vector
		 LIMIT $2`,
		lit, k,
	)
	if err != nil {
		return nil, fmt.Errorf("top-k query: %w", err)
	}
	defer rows.Close()

	var out []search.Candidate
	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.ID, &c.Title, &c.Subject, &c.Similarity,
			&c.ViewCount, &c.Upvotes, &c.DownloadCount); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top-k rows: %w", err)
	}
	return out, nil
}
