// Package mockapi serves a json-server compatible memo API backed by the
// in-memory store, for local development and tests of the REST store.
package mockapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/application/services"
	"memoboard/domain/core/valueobjects"
	"memoboard/infrastructure/persistence/memory"
	"memoboard/infrastructure/persistence/rest"
	pkgerrors "memoboard/pkg/errors"
	"memoboard/pkg/utils"
)

// Server exposes a memory store over HTTP
type Server struct {
	store  *memory.MemoStore
	images *services.ImageIntake
	logger *zap.Logger
}

// NewRouter creates the mock API router
func NewRouter(store *memory.MemoStore, logger *zap.Logger) *mux.Router {
	s := &Server{
		store:  store,
		images: services.NewImageIntake(ports.NotifierFunc(func(string, ports.Severity) {}), nil, logger),
		logger: logger,
	}

	router := mux.NewRouter()
	router.Use(s.logging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	router.HandleFunc("/memos", s.listMemos).Methods(http.MethodGet)
	router.HandleFunc("/memos", s.createMemo).Methods(http.MethodPost)
	router.HandleFunc("/memos/{id}", s.deleteMemo).Methods(http.MethodDelete)
	router.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return router
}

func (s *Server) listMemos(w http.ResponseWriter, r *http.Request) {
	memos, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	payloads := make([]rest.MemoPayload, 0, len(memos))
	for _, m := range memos {
		payloads = append(payloads, rest.NewMemoPayload(m))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) createMemo(w http.ResponseWriter, r *http.Request) {
	var payload rest.MemoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	// Length limits belong to the client's domain config
	content, err := valueobjects.RestoreMemoContent(payload.Title, payload.Content)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	var image valueobjects.Image
	if payload.Image != nil {
		if image, err = s.images.ValidateDataURI(*payload.Image); err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
	}

	createdAt := time.Now()
	if payload.CreatedAt != "" {
		if createdAt, err = utils.ParseTimestamp(payload.CreatedAt); err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
	}

	memo, err := s.store.CreateAt(r.Context(), ports.MemoDraft{
		Content:  content,
		Category: payload.Category,
		Image:    image,
		Tags:     payload.Tags,
	}, createdAt)
	if err != nil {
		status := http.StatusInternalServerError
		if pkgerrors.IsValidation(err) {
			status = http.StatusBadRequest
		}
		s.fail(w, status, err)
		return
	}

	writeJSON(w, http.StatusCreated, rest.NewMemoPayload(memo))
}

func (s *Server) deleteMemo(w http.ResponseWriter, r *http.Request) {
	id, err := valueobjects.MemoIDFromString(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if pkgerrors.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{})
			return
		}
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	payloads := make([]rest.CategoryPayload, 0, len(categories))
	for _, c := range categories {
		payloads = append(payloads, rest.NewCategoryPayload(c))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("Mock API request failed", zap.Int("status", status), zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Mock API",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// healthCheck provides a health check endpoint
func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
