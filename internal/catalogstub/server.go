// Package catalogstub serves a small in-memory catalog with the same JSON
// shape as the public API. Used by tests and for offline development.
package catalogstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abelbrown/bestiary/internal/catalog"
)

// ListPath is the listing route. Details live at ListPath + "/{id}".
const ListPath = "/api/v2/pokemon"

const defaultLimit = 20

// Server holds the fixture items and injected failures.
type Server struct {
	router chi.Router

	mu       sync.Mutex
	items    []catalog.Item
	failures map[int]int // item id -> HTTP status to answer with
	failList int         // non-zero: listing answers with this status
	hits     int
}

// New creates a stub serving items in the given order.
func New(items []catalog.Item, opts ...Option) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		items:    append([]catalog.Item(nil), items...),
		failures: make(map[int]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Option configures a Server.
type Option func(*Server)

// WithRequestLog logs every request to stdout. Off by default so tests stay quiet.
func WithRequestLog() Option {
	return func(s *Server) { s.router.Use(middleware.Logger) }
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.StripSlashes)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))
	s.router.Use(s.countHits)
}

func (s *Server) setupRoutes() {
	s.router.Get(ListPath, s.handleList)
	s.router.Get(ListPath+"/{id}", s.handleDetail)
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// FailDetail makes the detail route for id answer with status.
func (s *Server) FailDetail(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[id] = status
}

// FailList makes the listing route answer with status. Zero clears it.
func (s *Server) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = status
}

// ClearFailures removes every injected failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[int]int)
	s.failList = 0
}

// Hits returns the number of requests served so far.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// FirstPage returns the first listing URL for a server reachable at baseURL.
func FirstPage(baseURL string, limit int) string {
	return fmt.Sprintf("%s%s?limit=%d&offset=0", baseURL, ListPath, limit)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	failList := s.failList
	items := s.items
	s.mu.Unlock()

	if failList != 0 {
		respondError(w, failList, "listing unavailable")
		return
	}

	limit := queryInt(r, "limit", defaultLimit)
	offset := queryInt(r, "offset", 0)
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	base := baseURL(r)
	results := []listEntry{}
	for i := offset; i < len(items) && i < offset+limit; i++ {
		results = append(results, listEntry{
			Name: items[i].Name,
			URL:  fmt.Sprintf("%s%s/%d/", base, ListPath, items[i].ID),
		})
	}

	resp := listResponse{Count: len(items), Results: results}
	if offset+limit < len(items) {
		next := fmt.Sprintf("%s%s?offset=%d&limit=%d", base, ListPath, offset+limit, limit)
		resp.Next = &next
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	status, failing := s.failures[id]
	var found *catalog.Item
	for i := range s.items {
		if s.items[i].ID == id {
			found = &s.items[i]
			break
		}
	}
	s.mu.Unlock()

	if failing {
		respondError(w, status, "injected failure")
		return
	}
	if found == nil {
		respondError(w, http.StatusNotFound, "Not Found")
		return
	}
	respondJSON(w, http.StatusOK, toDetail(*found))
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
