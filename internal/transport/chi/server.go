// Package chi exposes the HTTP API surface of the service.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/conntour/spacesearch/internal/domain"
	healthuc "github.com/conntour/spacesearch/internal/usecase/health"
	historyuc "github.com/conntour/spacesearch/internal/usecase/history"
	searchuc "github.com/conntour/spacesearch/internal/usecase/search"
	sourcesuc "github.com/conntour/spacesearch/internal/usecase/sources"
)

// Error codes returned in JSON error bodies.
const (
	codeValidationFailed = "validation_failed"
	codeHistoryNotFound  = "history_not_found"
	codeEmbeddingError   = "embedding_provider_error"
)

// Limits bounds a client-supplied page size.
type Limits struct {
	Default int
	Max     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the usecase services to HTTP routes.
type Server struct {
	sources       *sourcesuc.Service
	search        *searchuc.Service
	history       *historyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	searchLimits  Limits
	historyLimits Limits
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	sources *sourcesuc.Service,
	search *searchuc.Service,
	history *historyuc.Service,
	health *healthuc.Service,
	searchLimits Limits,
	historyLimits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		sources:       sources,
		search:        search,
		history:       history,
		health:        health,
		logger:        logger,
		searchLimits:  searchLimits,
		historyLimits: historyLimits,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrHistoryNotFound, http.StatusNotFound, codeHistoryNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
	}
	return s
}

// RegisterRoutes mounts all API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/api/sources", s.GetSources)
	r.Get("/api/search", s.Search)
	r.Get("/api/history", s.ListHistory)
	r.Get("/api/history/{historyID}/results", s.GetHistoryResults)
	r.Delete("/api/history/{historyID}", s.DeleteHistory)
	r.Get("/health", s.Health)
}

// GetSources handles GET /api/sources.
func (s *Server) GetSources(w http.ResponseWriter, _ *http.Request) {
	sources := s.sources.GetAll()
	if sources == nil {
		sources = []domain.Source{}
	}
	writeJSON(w, http.StatusOK, sources)
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit, ok := s.pageSize(w, r, "limit", s.searchLimits)
	if !ok {
		return
	}

	skipHistory := r.URL.Query().Get("skipHistory") == "true"

	results := s.search.Search(r.Context(), q, limit, !skipHistory)
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// ListHistory handles GET /api/history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	startIndex := 0
	if raw := r.URL.Query().Get("startIndex"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "startIndex must be a non-negative integer")
			return
		}
		startIndex = v
	}

	limit, ok := s.pageSize(w, r, "limit", s.historyLimits)
	if !ok {
		return
	}

	page := s.history.List(startIndex, limit)
	if page.Items == nil {
		page.Items = []domain.HistorySummary{}
	}
	writeJSON(w, http.StatusOK, page)
}

// GetHistoryResults handles GET /api/history/{historyID}/results.
func (s *Server) GetHistoryResults(w http.ResponseWriter, r *http.Request) {
	historyID := chi.URLParam(r, "historyID")

	results, err := s.history.GetFullResults(historyID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// DeleteHistory handles DELETE /api/history/{historyID}.
func (s *Server) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	historyID := chi.URLParam(r, "historyID")

	if !s.history.Delete(historyID) {
		writeError(w, http.StatusNotFound, codeHistoryNotFound,
			"History record "+historyID+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

// pageSize reads a bounded page-size query parameter, falling back to the
// configured default. Writes a 400 response and returns ok=false when the
// value is not an integer in [1, limits.Max].
func (s *Server) pageSize(w http.ResponseWriter, r *http.Request, param string, limits Limits) (int, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return limits.Default, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > limits.Max {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			param+" must be an integer between 1 and "+strconv.Itoa(limits.Max))
		return 0, false
	}
	return v, true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}
	s.logger.Error("Unhandled domain error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

// sentinelHandler maps a sentinel error to an HTTP status and error code.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
