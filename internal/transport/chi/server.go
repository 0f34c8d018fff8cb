package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kuriozlab/vecman/internal/domain"
	collectionuc "github.com/kuriozlab/vecman/internal/usecase/collection"
	documentuc "github.com/kuriozlab/vecman/internal/usecase/document"
	healthuc "github.com/kuriozlab/vecman/internal/usecase/health"
	"github.com/kuriozlab/vecman/internal/version"
)

const serviceName = "vecman"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the collection and document services over HTTP.
type Server struct {
	collections   *collectionuc.Service
	documents     *documentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	collections *collectionuc.Service,
	documents *documentuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		collections: collections,
		documents:   documents,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotEmpty, http.StatusBadRequest, codeCollectionNotEmpty),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusBadRequest, codeCollectionExists),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeCollectionNotFound),
	}
	return s
}

// Routes registers all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/collections", func(r chi.Router) {
		r.Post("/", s.CreateCollection)
		r.Get("/", s.ListCollections)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetCollection)
			r.Patch("/", s.UpdateCollection)
			r.Delete("/", s.DeleteCollection)
			r.Post("/clear", s.ClearCollection)
			r.Get("/stats", s.CollectionStats)
			r.Get("/exists", s.CollectionExists)
			r.Get("/documents", s.ListDocuments)
			// Wildcard: filenames may contain path separators.
			r.Delete("/documents/*", s.DeleteDocument)
		})
	})
}

// CreateCollection handles POST /api/collections.
func (s *Server) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Collection name is required")
		return
	}
	vectorSize := domain.DefaultVectorSize
	if req.VectorSize != nil {
		vectorSize = *req.VectorSize
	}
	if vectorSize <= 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("vector_size must be positive, got %d", vectorSize))
		return
	}

	err := s.collections.Create(r.Context(), req.Name, req.Description, uint64(vectorSize), req.Distance)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, actionResponse{
		Success:        true,
		CollectionName: req.Name,
		Message:        fmt.Sprintf("Collection %q created successfully", req.Name),
	})
}

// ListCollections handles GET /api/collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := s.collections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if cols == nil {
		cols = []domain.Collection{}
	}
	writeJSON(w, http.StatusOK, cols)
}

// GetCollection handles GET /api/collections/{name}.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	col, err := s.collections.Get(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// UpdateCollection handles PATCH /api/collections/{name}.
func (s *Server) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req updateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.collections.Update(r.Context(), name, req.Description); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse{
		Success:        true,
		CollectionName: name,
		Message:        fmt.Sprintf("Collection %q updated successfully", name),
	})
}

// DeleteCollection handles DELETE /api/collections/{name}?force=bool.
func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("invalid force value %q", raw))
			return
		}
		force = parsed
	}

	if err := s.collections.Delete(r.Context(), name, force); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse{
		Success:        true,
		CollectionName: name,
		Message:        fmt.Sprintf("Collection %q deleted successfully", name),
	})
}

// ClearCollection handles POST /api/collections/{name}/clear.
func (s *Server) ClearCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.collections.Clear(r.Context(), name); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse{
		Success:        true,
		CollectionName: name,
		Message:        fmt.Sprintf("Collection %q cleared successfully", name),
	})
}

// CollectionStats handles GET /api/collections/{name}/stats.
func (s *Server) CollectionStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	col, err := s.collections.Get(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	docs, err := s.documents.List(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionStatsResponse{
		Collection:     col,
		TotalDocuments: docs.TotalDocuments,
		TotalPoints:    docs.TotalPoints,
	})
}

// CollectionExists handles GET /api/collections/{name}/exists.
func (s *Server) CollectionExists(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	exists, err := s.collections.Exists(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, existsResponse{CollectionName: name, Exists: exists})
}

// ListDocuments handles GET /api/collections/{name}/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	docs, err := s.documents.List(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if docs.Documents == nil {
		docs.Documents = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// DeleteDocument handles DELETE /api/collections/{name}/documents/{filename}.
// The filename is the trailing wildcard so names with path separators work.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	filename := chi.URLParam(r, "*")
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}
	if filename == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Document filename is required")
		return
	}

	deleted, err := s.documents.Delete(r.Context(), name, filename)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteDocumentResponse{
		Success:        true,
		CollectionName: name,
		Filename:       filename,
		DeletedPoints:  deleted,
		Message:        fmt.Sprintf("Deleted %d chunks of document %q", deleted, filename),
	})
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
		Status:  string(report.Status),
		Service: serviceName,
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleDomainError maps sentinel errors onto client status codes. Anything
// unanticipated surfaces as a 500 carrying the underlying error text, which
// is the contract callers of this service rely on.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, err.Error())
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
