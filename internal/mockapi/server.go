// Package mockapi is an in-memory stand-in for the remote notes service,
// implementing the same contract: envelope responses, bearer auth, and the
// active/archived note partition. It backs `catatan serve` and the client
// tests.
package mockapi

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catatan/pkg/models"
)

type user struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	password string
}

// Server holds the in-memory state behind the mock endpoints.
type Server struct {
	mu       sync.Mutex
	users    map[string]*user  // id -> user
	tokens   map[string]string // token -> user id
	notes    []*models.Note
	archived []*models.Note
	log      *logrus.Logger
}

// New returns a server pre-provisioned with a demo account
// (demo@example.com / password).
func New(log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}
	s := &Server{
		users:  map[string]*user{},
		tokens: map[string]string{},
		log:    log,
	}
	demo := &user{ID: uuid.NewString(), Name: "Demo User", Email: "demo@example.com", password: "password"}
	s.users[demo.ID] = demo
	return s
}

// Handler mounts the notes API under the given prefix (typically "/v2").
func (s *Server) Handler(prefix string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+prefix+"/users", s.handleRegister)
	mux.HandleFunc("POST "+prefix+"/authentications", s.handleLogin)
	mux.HandleFunc("GET "+prefix+"/users/me", s.handleMe)
	mux.HandleFunc("GET "+prefix+"/notes", s.handleNotes)
	mux.HandleFunc("GET "+prefix+"/notes/archived", s.handleArchivedNotes)
	mux.HandleFunc("POST "+prefix+"/notes", s.handleCreate)
	mux.HandleFunc("DELETE "+prefix+"/notes/{id}", s.handleDelete)
	mux.HandleFunc("POST "+prefix+"/notes/{id}/archive", s.handleArchive)
	mux.HandleFunc("POST "+prefix+"/notes/{id}/unarchive", s.handleUnarchive)
	return mux
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func success(data any) map[string]any {
	return map[string]any{"status": "success", "data": data}
}

func fail(message string) map[string]any {
	return map[string]any{"status": "fail", "message": message}
}

// authUser resolves the bearer token to a user id; empty means unauthorized.
func (s *Server) authUser(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer"))
	if token == "" {
		return ""
	}
	return s.tokens[token]
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, fail("Missing name/email/password"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email {
			writeJSON(w, http.StatusBadRequest, fail("Email already registered"))
			return
		}
	}
	u := &user{ID: uuid.NewString(), Name: req.Name, Email: req.Email, password: req.Password}
	s.users[u.ID] = u
	s.log.WithField("email", u.Email).Info("registered user")
	writeJSON(w, http.StatusCreated, success(map[string]string{"userId": u.ID}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, fail("Missing credentials"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email && u.password == req.Password {
			token := "mock-" + uuid.NewString()
			s.tokens[token] = u.ID
			writeJSON(w, http.StatusCreated, success(map[string]string{"accessToken": token}))
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, fail("Invalid credentials"))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := s.authUser(r)
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	u := s.users[userID]
	writeJSON(w, http.StatusOK, success(map[string]*user{"user": u}))
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser(r) == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	writeJSON(w, http.StatusOK, success(map[string]any{"notes": s.notes}))
}

func (s *Server) handleArchivedNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser(r) == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	writeJSON(w, http.StatusOK, success(map[string]any{"notes": s.archived}))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser(r) == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Body == "" {
		writeJSON(w, http.StatusBadRequest, fail("Missing title or body"))
		return
	}
	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
		Archived:  false,
	}
	s.notes = append([]*models.Note{note}, s.notes...)
	writeJSON(w, http.StatusCreated, success(map[string]*models.Note{"note": note}))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser(r) == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	id := r.PathValue("id")
	s.notes = removeNote(s.notes, id)
	s.archived = removeNote(s.archived, id)
	// Deleting an unknown id still succeeds, mirroring the upstream mock.
	writeJSON(w, http.StatusOK, success(map[string]any{}))
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser(r) == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	id := r.PathValue("id")
	note, rest := takeNote(s.notes, id)
	if note == nil {
		writeJSON(w, http.StatusNotFound, fail("Note not found"))
		return
	}
	note.Archived = true
	s.notes = rest
	s.archived = append([]*models.Note{note}, s.archived...)
	writeJSON(w, http.StatusOK, success(map[string]any{}))
}

func (s *Server) handleUnarchive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser(r) == "" {
		writeJSON(w, http.StatusUnauthorized, fail("Unauthorized"))
		return
	}
	id := r.PathValue("id")
	note, rest := takeNote(s.archived, id)
	if note == nil {
		writeJSON(w, http.StatusNotFound, fail("Note not found"))
		return
	}
	note.Archived = false
	s.archived = rest
	s.notes = append([]*models.Note{note}, s.notes...)
	writeJSON(w, http.StatusOK, success(map[string]any{}))
}

func removeNote(notes []*models.Note, id string) []*models.Note {
	out := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func takeNote(notes []*models.Note, id string) (*models.Note, []*models.Note) {
	for i, n := range notes {
		if n.ID == id {
			rest := append(append([]*models.Note{}, notes[:i]...), notes[i+1:]...)
			return n, rest
		}
	}
	return nil, notes
}
