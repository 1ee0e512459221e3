package domain

import "time"

// EmbeddingDim is the fixed embedding dimension for note vectors. Every
// stored vector and every query vector must match it; a note whose
// embedding has not been computed yet is invisible to search.
const EmbeddingDim = 384

// Note is an uploaded document. The engagement counters only ever
// increase; they are mutated by the view/download/upvote operations and
// read-only during search.
type Note struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	ObjectKey     string    `json:"-"`
	ContentType   string    `json:"content_type"`
	FileSize      int64     `json:"file_size"`
	IsPrivate     bool      `json:"is_private"`
	ViewCount     int       `json:"view_count"`
	DownloadCount int       `json:"download_count"`
	Upvotes       int       `json:"upvotes"`
	CreatedAt     time.Time `json:"created_at"`
}
