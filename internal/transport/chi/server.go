// Package chi exposes the people-search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/domain"
	directoryuc "github.com/slaguerre91/people-search-homepage/internal/usecase/directory"
	healthuc "github.com/slaguerre91/people-search-homepage/internal/usecase/health"
	parseuc "github.com/slaguerre91/people-search-homepage/internal/usecase/parse"
	searchuc "github.com/slaguerre91/people-search-homepage/internal/usecase/search"
)

// Query length caps, matching the limits the directory enforces on writes.
const (
	maxQueryLen  = 200
	maxPrefixLen = 100
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services to their HTTP routes.
type Server struct {
	search        *searchuc.Service
	directory     *directoryuc.Service
	parser        *parseuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	directory *directoryuc.Service,
	parser *parseuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		directory: directory,
		parser:    parser,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrProfileNotFound, http.StatusNotFound, codeProfileNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrParseQuotaExceeded, http.StatusPaymentRequired, codeParseQuotaExceeded),
		sentinelHandler(domain.ErrParseProviderError, http.StatusBadGateway, codeParseProviderError),
		sentinelHandler(domain.ErrExternalSearch, http.StatusBadGateway, codeExternalSearchFailed),
		sentinelHandler(domain.ErrLocalSearch, http.StatusServiceUnavailable, codeLocalSearchFailed),
		sentinelHandler(domain.ErrWriteFailure, http.StatusInternalServerError, codeWriteFailed),
	}
	return s
}

// Register mounts all routes on r.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.SearchPeople)
		r.Post("/search/external", s.SearchExternal)
		r.Get("/search/autocomplete", s.Autocomplete)
		r.Get("/search/parse", s.ParseQuery)

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", s.CreateProfile)
			r.Get("/{id}", s.GetProfile)
			r.Delete("/{id}", s.DeleteProfile)
			r.Post("/{id}/reviews", s.AddReview)
		})
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchPeople handles GET /api/v1/search.
func (s *Server) SearchPeople(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) > maxQueryLen {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"q must be at most "+strconv.Itoa(maxQueryLen)+" characters")
		return
	}

	out := s.search.Search(r.Context(), q)
	writeJSON(w, http.StatusOK, outcomeToResponse(q, &out))
}

// SearchExternal handles POST /api/v1/search/external.
func (s *Server) SearchExternal(w http.ResponseWriter, r *http.Request) {
	var req externalSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}
	if len(req.Query) > maxQueryLen {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"query must be at most "+strconv.Itoa(maxQueryLen)+" characters")
		return
	}

	res, err := s.search.SearchExternal(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lookupToResponse(req.Query, res))
}

// Autocomplete handles GET /api/v1/search/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) > maxPrefixLen {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"q must be at most "+strconv.Itoa(maxPrefixLen)+" characters")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	suggestions, err := s.directory.Autocomplete(r.Context(), q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsToResponse(suggestions))
}

// ParseQuery handles GET /api/v1/search/parse. Debug endpoint to see how a
// query splits into fragments.
func (s *Server) ParseQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) > maxQueryLen {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"q must be at most "+strconv.Itoa(maxQueryLen)+" characters")
		return
	}

	res := s.parser.Parse(r.Context(), q)
	writeJSON(w, http.StatusOK, parseResponse{
		Name:      res.Parsed.Name(),
		Company:   res.Parsed.Organization(),
		Confident: res.Confident,
		Source:    res.Source,
		RawQuery:  q,
	})
}

// CreateProfile handles POST /api/v1/profiles.
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.directory.CreateProfile(r.Context(), req.Name, req.Company, req.Role, req.Location, req.Bio)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profileToResponse(p, nil))
}

// GetProfile handles GET /api/v1/profiles/{id}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, reviews, err := s.directory.GetProfile(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(p, reviews))
}

// DeleteProfile handles DELETE /api/v1/profiles/{id}.
func (s *Server) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddReview handles POST /api/v1/profiles/{id}/reviews.
func (s *Server) AddReview(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rv, err := s.directory.AddReview(r.Context(), chi.URLParam(r, "id"), req.Author, req.Rating, req.Comment)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewToResponse(rv))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProfileNotFound,
		domain.ErrInvalidInput,
		domain.ErrUnauthorized,
		domain.ErrWriteFailure,
		domain.ErrLocalSearch,
		domain.ErrExternalSearch,
		domain.ErrRateLimited,
		domain.ErrParseQuotaExceeded,
		domain.ErrParseProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler handles ErrInvalidInput, surfacing field-level detail
// when the error carries it.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, codeValidationFailed, ve.Error())
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
