// Package apitest runs an in-process fake of the remote booking service so
// client, service and console code can be tested end to end.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"eventadmin/internal/api"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Demo admin credentials accepted by the fake service.
const (
	AdminEmail    = "admin@events.com"
	AdminPassword = "admin123"
)

type failure struct {
	status  int
	message string
}

// Server is the fake service. All exported methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	tokens       *tokenManager
	passwordHash []byte

	mu       sync.Mutex
	bookings []api.Booking
	messages []api.Message
	gallery  []api.GalleryImage
	uploads  map[string][]byte
	hits     map[string]int
	failures map[string]failure
	holds    map[string]*Hold
	nextID   int

	requestIDs []string
}

// New starts a fake service and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	s := &Server{
		tokens:       newTokenManager([]byte("apitest-secret-apitest-secret-00"), time.Hour),
		passwordHash: hash,
		uploads:      map[string][]byte{},
		hits:         map[string]int{},
		failures:     map[string]failure{},
		holds:        map[string]*Hold{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, s.accessLog)

	s.handle(r, http.MethodPost, "/api/auth/login", s.login)
	s.handle(r, http.MethodGet, "/api/auth/verify", s.requireAuth(s.verify))

	s.handle(r, http.MethodPost, "/api/bookings", s.createBooking)
	s.handle(r, http.MethodGet, "/api/bookings", s.requireAuth(s.listBookings))
	s.handle(r, http.MethodGet, "/api/bookings/{id}", s.requireAuth(s.getBooking))
	s.handle(r, http.MethodPatch, "/api/bookings/{id}/status", s.requireAuth(s.updateBookingStatus))
	s.handle(r, http.MethodDelete, "/api/bookings/{id}", s.requireAuth(s.deleteBooking))

	s.handle(r, http.MethodPost, "/api/messages", s.createMessage)
	s.handle(r, http.MethodGet, "/api/messages", s.requireAuth(s.listMessages))
	s.handle(r, http.MethodPatch, "/api/messages/{id}/read", s.requireAuth(s.markMessageRead))
	s.handle(r, http.MethodDelete, "/api/messages/{id}", s.requireAuth(s.deleteMessage))

	s.handle(r, http.MethodGet, "/api/gallery", s.listGallery)
	s.handle(r, http.MethodPost, "/api/gallery", s.requireAuth(s.uploadImage))
	s.handle(r, http.MethodDelete, "/api/gallery/{id}", s.requireAuth(s.deleteImage))

	return r
}

// handle registers h and wraps it with hit counting and failure injection.
// Routes are keyed as "METHOD pattern", e.g. "GET /api/bookings".
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	route := method + " " + pattern
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		s.hits[route]++
		f, failing := s.failures[route]
		hold := s.holds[route]
		delete(s.holds, route)
		s.mu.Unlock()
		if hold != nil {
			hold.serve(w, req, func(w http.ResponseWriter) { s.answer(w, req, h, f, failing) })
			return
		}
		s.answer(w, req, h, f, failing)
	}))
}

func (s *Server) answer(w http.ResponseWriter, req *http.Request, h http.HandlerFunc, f failure, failing bool) {
	if failing {
		writeJSON(w, f.status, map[string]string{"message": f.message})
		return
	}
	h(w, req)
}

// Fail makes route answer with status and message until Recover is called.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// HoldNext makes the next request on route compute its response and then
// wait before sending it, so a test can change state while the old answer
// is still in flight.
func (s *Server) HoldNext(route string) *Hold {
	h := &Hold{parked: make(chan struct{}), gate: make(chan struct{})}
	s.mu.Lock()
	s.holds[route] = h
	s.mu.Unlock()
	return h
}

// Hold is a response parked by HoldNext.
type Hold struct {
	parked  chan struct{}
	gate    chan struct{}
	release sync.Once
}

// Parked is closed once the held response has been computed.
func (h *Hold) Parked() <-chan struct{} { return h.parked }

// Release lets the held response go out. Safe to call more than once.
func (h *Hold) Release() {
	h.release.Do(func() { close(h.gate) })
}

func (h *Hold) serve(w http.ResponseWriter, req *http.Request, answer func(http.ResponseWriter)) {
	rec := httptest.NewRecorder()
	answer(rec)
	close(h.parked)
	select {
	case <-h.gate:
	case <-req.Context().Done():
		return
	}
	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	_, _ = w.Write(rec.Body.Bytes())
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of requests the service has received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// Routes lists every route that received at least one request.
func (s *Server) Routes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.hits))
	for route := range s.hits {
		out = append(out, route)
	}
	sort.Strings(out)
	return out
}

// IssueToken returns a valid admin token without going through login.
func (s *Server) IssueToken(t testing.TB) string {
	t.Helper()
	tok, err := s.tokens.issue(AdminEmail)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.tokens.revokeAll()
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token provided"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		if _, err := s.tokens.parse(token); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
