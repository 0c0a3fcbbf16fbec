package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ratonica/internal/domain"
	"github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/filter"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/ratonica/internal/logger"
	healthuc "github.com/kailas-cloud/ratonica/internal/usecase/health"
	historyuc "github.com/kailas-cloud/ratonica/internal/usecase/history"
	productuc "github.com/kailas-cloud/ratonica/internal/usecase/product"
	searchuc "github.com/kailas-cloud/ratonica/internal/usecase/search"
)

// Client-facing error messages. They never carry internal details.
const (
	msgMissingFields   = "Missing required fields"
	msgInvalidBody     = "Invalid request body"
	msgUnsupportedType = "Unsupported query type"
	msgAnalyzeFailed   = "Failed to analyze image"
	msgInternal        = "Internal server error"
	msgInvalidResult   = "Invalid search result data"
	msgSaveFailed      = "Failed to save search"
	msgHistoryFailed   = "Failed to fetch search history"
	msgSearchNotFound  = "Search not found"
	msgProductNotFound = "Product not found"
	msgInvalidFilter   = "Invalid filter"
	msgInvalidParams   = "Invalid query parameters"
)

// maxRequestBodyBytes bounds request bodies; base64 images are large.
const maxRequestBodyBytes = 16 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface.
type Server struct {
	search        *searchuc.Service
	history       *historyuc.Service
	products      *productuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	now           func() time.Time
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	history *historyuc.Service,
	products *productuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		history:  history,
		products: products,
		health:   health,
		logger:   logger,
		now:      time.Now,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, msgMissingFields),
		sentinelHandler(domain.ErrInvalidResult, http.StatusBadRequest, msgInvalidResult),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, msgInvalidFilter),
		sentinelHandler(domain.ErrSearchNotFound, http.StatusNotFound, msgSearchNotFound),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, msgProductNotFound),
		sentinelHandler(domain.ErrVisionProviderError, http.StatusInternalServerError, msgAnalyzeFailed),
	}
	return s
}

type searchRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Type == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	q, err := query.New(query.Type(req.Type), req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgUnsupportedType)
		return
	}

	res, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, resultToDTO(&res))
}

// ListHistory handles GET /history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request, params ListHistoryParams) {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	results, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, r, err, msgHistoryFailed)
		return
	}

	items := make([]HistoryItemDTO, len(results))
	for i := range results {
		items[i] = historyItemToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// SaveSearch handles POST /history.
func (s *Server) SaveSearch(w http.ResponseWriter, r *http.Request) {
	var req SaveSearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidResult)
		return
	}
	if req.Query == nil || req.Products == nil {
		writeError(w, http.StatusBadRequest, msgInvalidResult)
		return
	}

	id, err := s.history.Save(r.Context(), resultFromSaveRequest(&req, s.now()))
	if err != nil {
		s.handleDomainError(w, r, err, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusOK, SaveSearchResponse{SearchID: id})
}

// GetSearch handles GET /history/{id}.
func (s *Server) GetSearch(w http.ResponseWriter, r *http.Request, id string, params GetSearchParams) {
	opts, err := filterFromParams(params)
	if err != nil {
		s.handleDomainError(w, r, err, msgInternal)
		return
	}

	res, err := s.history.GetFiltered(r.Context(), id, opts)
	if err != nil {
		s.handleDomainError(w, r, err, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, resultToDTO(&res))
}

// GetProduct handles GET /products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.products.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, detailToDTO(&d))
}

// ListPlatforms handles GET /platforms.
func (s *Server) ListPlatforms(w http.ResponseWriter, _ *http.Request) {
	cfgs := s.products.Platforms()
	out := make([]PlatformDTO, len(cfgs))
	for i, c := range cfgs {
		out[i] = platformToDTO(c)
	}
	writeJSON(w, http.StatusOK, out)
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

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func filterFromParams(p GetSearchParams) (filter.Options, error) {
	var platforms []product.Platform
	if p.Platform != nil {
		for _, v := range *p.Platform {
			platforms = append(platforms, product.Platform(v))
		}
	}
	var conditions []product.Condition
	if p.Condition != nil {
		for _, v := range *p.Condition {
			conditions = append(conditions, product.Condition(v))
		}
	}
	opts, err := filter.New(p.MinPrice, p.MaxPrice, p.MinSimilarity, platforms, conditions)
	if err != nil {
		return filter.Options{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	return opts, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst) //nolint:wrapcheck // callers map any decode error to 400
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

// handleDomainError maps known sentinels to their status and answers
// everything else with a 500 carrying fallback.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallback)
}
