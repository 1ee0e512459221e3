// Package note implements note upload, retrieval, and engagement
// operations.
package note

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushare/notehub/internal/domain"
	"github.com/campushare/notehub/internal/logger"
)

// Service handles the note lifecycle.
type Service struct {
	repo       Repository
	blobs      BlobStore
	embed      Embedder
	challenges ChallengeFulfiller
}

// New creates a note service.
func New(repo Repository, blobs BlobStore, embed Embedder, challenges ChallengeFulfiller) *Service {
	return &Service{repo: repo, blobs: blobs, embed: embed, challenges: challenges}
}

// UploadInput carries the multipart upload fields.
type UploadInput struct {
	UserID      string
	Title       string
	Subject     string
	IsPrivate   bool
	ContentType string
	Data        []byte
}

// Upload stores the file, inserts the note row, and indexes it for
// search. The embedding call is best-effort: on failure the note exists
// but stays out of the search index until re-indexed. A successful index
// of a public note also settles any matching demand challenge.
func (s *Service) Upload(ctx context.Context, in UploadInput) (domain.Note, error) {
	if in.Title == "" || in.Subject == "" {
		return domain.Note{}, fmt.Errorf("%w: title and subject are required", domain.ErrValidation)
	}
	if len(in.Data) == 0 {
		return domain.Note{}, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}

	objectKey := uuid.NewString()
	if err := s.blobs.Upload(ctx, objectKey, in.Data, in.ContentType); err != nil {
		return domain.Note{}, fmt.Errorf("store file: %w", err)
	}

	n := domain.Note{
		UserID:      in.UserID,
		Title:       in.Title,
		Subject:     in.Subject,
		ObjectKey:   objectKey,
		ContentType: in.ContentType,
		FileSize:    int64(len(in.Data)),
		IsPrivate:   in.IsPrivate,
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.index(ctx, &n)

	return n, nil
}

// index embeds "title subject" and stores the vector, then settles any
// matching challenge. Failures are logged, never surfaced: the upload
// already succeeded.
func (s *Service) index(ctx context.Context, n *domain.Note) {
	res, err := s.embed.Embed(ctx, n.Title+" "+n.Subject)
	if err != nil {
		logger.FromContext(ctx).Warn("note embedding failed, note not searchable",
			zap.String("note_id", n.ID), zap.Error(err))
		return
	}
	if err := s.repo.SetEmbedding(ctx, n.ID, res.Embedding); err != nil {
		logger.FromContext(ctx).Warn("storing note embedding failed",
			zap.String("note_id", n.ID), zap.Error(err))
		return
	}

	if n.IsPrivate {
		return
	}
	if _, err := s.challenges.FulfillByTitle(ctx, n.Title, n.ID); err != nil {
		logger.FromContext(ctx).Warn("challenge fulfillment failed",
			zap.String("note_id", n.ID), zap.Error(err))
	}
}

// File is a downloadable note payload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// View returns the note file for inline display, bumping the view
// counter. Private notes are only visible to their owner.
func (s *Service) View(ctx context.Context, noteID, userID string) (File, error) {
	n, err := s.authorize(ctx, noteID, userID)
	if err != nil {
		return File{}, err
	}

	if err := s.repo.IncrementViews(ctx, noteID); err != nil {
		return File{}, fmt.Errorf("count view: %w", err)
	}

	return s.fetch(ctx, n)
}

// Download returns the note file for attachment download, bumping the
// download counter.
func (s *Service) Download(ctx context.Context, noteID, userID string) (File, error) {
	n, err := s.authorize(ctx, noteID, userID)
	if err != nil {
		return File{}, err
	}

	if err := s.repo.IncrementDownloads(ctx, noteID); err != nil {
		return File{}, fmt.Errorf("count download: %w", err)
	}

	return s.fetch(ctx, n)
}

// Upvote registers an upvote and returns the new total.
func (s *Service) Upvote(ctx context.Context, noteID, userID string) (int, error) {
	if _, err := s.authorize(ctx, noteID, userID); err != nil {
		return 0, err
	}

	total, err := s.repo.Upvote(ctx, noteID)
	if err != nil {
		return 0, fmt.Errorf("upvote note: %w", err)
	}
	return total, nil
}

func (s *Service) authorize(ctx context.Context, noteID, userID string) (domain.Note, error) {
	n, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("load note: %w", err)
	}
	if n.IsPrivate && n.UserID != userID {
		return domain.Note{}, domain.ErrForbidden
	}
	return n, nil
}

func (s *Service) fetch(ctx context.Context, n domain.Note) (File, error) {
	data, contentType, err := s.blobs.Download(ctx, n.ObjectKey)
	if err != nil {
		return File{}, fmt.Errorf("fetch file: %w", err)
	}
	if contentType == "" {
		contentType = n.ContentType
	}
	return File{Name: n.Title, ContentType: contentType, Data: data}, nil
}
