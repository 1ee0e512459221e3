// Package chi implements the HTTP API over the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campushare/notehub/internal/domain"
	"github.com/campushare/notehub/internal/repository/session"
	demanduc "github.com/campushare/notehub/internal/usecase/demand"
	healthuc "github.com/campushare/notehub/internal/usecase/health"
	noteuc "github.com/campushare/notehub/internal/usecase/note"
	searchuc "github.com/campushare/notehub/internal/usecase/search"
	useruc "github.com/campushare/notehub/internal/usecase/user"
)

// maxUploadBytes caps multipart note uploads.
const maxUploadBytes = 32 << 20 // 32 MiB

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers over the use case services.
type Server struct {
	users         *useruc.Service
	notes         *noteuc.Service
	search        *searchuc.Service
	demand        *demanduc.Service
	health        *healthuc.Service
	sessions      SessionResolver
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	users *useruc.Service,
	notes *noteuc.Service,
	search *searchuc.Service,
	demand *demanduc.Service,
	health *healthuc.Service,
	sessions SessionResolver,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:    users,
		notes:    notes,
		search:   search,
		demand:   demand,
		health:   health,
		sessions: sessions,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, "invalid_query"),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, "forbidden"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, "already_exists"),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, "embedding_unavailable"),
		sentinelHandler(domain.ErrRetrievalUnavailable, http.StatusServiceUnavailable, "retrieval_unavailable"),
	}
	return s
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/logout", s.Logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(s.sessions))
			r.Get("/auth/me", s.Me)
			r.Get("/search", s.Search)
			r.Post("/notes", s.UploadNote)
			r.Get("/notes/{id}/view", s.ViewNote)
			r.Get("/notes/{id}/download", s.DownloadNote)
			r.Post("/notes/{id}/upvote", s.UpvoteNote)
			r.Get("/challenges", s.ListChallenges)
		})
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	u, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	u, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setSessionCookie(w, token, session.TTL)
	writeJSON(w, http.StatusOK, u)
}

// Logout handles POST /api/v1/auth/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := s.users.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("logout failed", zap.Error(err))
		}
	}

	setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// searchResponse is the miss-side envelope; hits return the ranked list
// under "results".
type searchResponse struct {
	Message          string `json:"message"`
	DemandLogged     bool   `json:"demand_logged"`
	TopicKey         string `json:"topic_key"`
	ChallengeCreated bool   `json:"challenge_created"`
	RewardCredits    int    `json:"reward_credits"`
	DemandCount      int    `json:"demand_count"`
}

// Search handles GET /api/v1/search?q=...
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	out, err := s.search.Search(r.Context(), query, UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if out.Hit {
		writeJSON(w, http.StatusOK, map[string]any{
			"results": out.Results,
			"total":   len(out.Results),
		})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Message:          "No relevant notes found.",
		DemandLogged:     true,
		TopicKey:         out.TopicKey,
		ChallengeCreated: out.Demand.Created,
		RewardCredits:    out.Demand.RewardCredits,
		DemandCount:      out.Demand.DemandCount,
	})
}

// UploadNote handles POST /api/v1/notes (multipart form).
func (s *Server) UploadNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "failed to read file")
		return
	}

	n, err := s.notes.Upload(r.Context(), noteuc.UploadInput{
		UserID:      UserIDFromContext(r.Context()),
		Title:       r.FormValue("title"),
		Subject:     r.FormValue("subject"),
		IsPrivate:   r.FormValue("is_private") == "true",
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, n)
}

// ViewNote handles GET /api/v1/notes/{id}/view.
func (s *Server) ViewNote(w http.ResponseWriter, r *http.Request) {
	f, err := s.notes.View(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	_, _ = w.Write(f.Data)
}

// DownloadNote handles GET /api/v1/notes/{id}/download.
func (s *Server) DownloadNote(w http.ResponseWriter, r *http.Request) {
	f, err := s.notes.Download(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	_, _ = w.Write(f.Data)
}

// UpvoteNote handles POST /api/v1/notes/{id}/upvote.
func (s *Server) UpvoteNote(w http.ResponseWriter, r *http.Request) {
	total, err := s.notes.Upvote(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Upvoted successfully",
		"total_upvotes": total,
	})
}

// ListChallenges handles GET /api/v1/challenges.
func (s *Server) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.demand.ListActive(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"challenges": challenges,
		"total":      len(challenges),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, report)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrValidation,
		domain.ErrInvalidCredentials,
		domain.ErrForbidden,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrEmbeddingUnavailable,
		domain.ErrRetrievalUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
