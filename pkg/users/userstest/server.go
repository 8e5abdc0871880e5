// Package userstest provides an in-memory users API for tests and local
// demos.
package userstest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"

	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/web"
)

// Request is a request received by the Server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// API serves /api/users from memory. Users are JSON objects whose "id" is
// assigned on creation as a random UUID.
type API struct {
	mu       sync.Mutex
	users    map[string]map[string]any
	requests []Request
}

// NewAPI returns an API with no users.
func NewAPI() *API {
	return &API{users: make(map[string]map[string]any)}
}

// Server is an API listening on a local httptest server.
type Server struct {
	*httptest.Server
	*API
}

// NewServer starts a Server. Callers must Close it.
func NewServer() *Server {
	api := NewAPI()
	return &Server{
		Server: httptest.NewServer(api.Handler(log.DefaultLogger)),
		API:    api,
	}
}

// Handler returns the router of the API. Entries are logged with logger.
func (s *API) Handler(logger log.Logger) http.Handler {
	mw := []web.Middleware{s.record, web.Logger(logger), web.Panics(), web.ContentTypeJSON()}

	r := chi.NewRouter()
	r.Get("/api/users", web.Wrap(s.list, mw...))
	r.Post("/api/users", web.Wrap(s.create, mw...))
	r.Get("/api/users/{id}", web.Wrap(s.get, mw...))
	r.Put("/api/users/{id}", web.Wrap(s.update, mw...))
	r.Delete("/api/users/{id}", web.Wrap(s.delete, mw...))
	r.NotFound(web.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return web.NotFoundErrorf("no route for %s %s", r.Method, r.URL.Path)
	}, s.record))

	return r
}

// Seed stores user under id, replacing any previous one.
func (s *API) Seed(id string, user map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[id] = withID(user, id)
}

// Requests returns the requests received so far, oldest first.
func (s *API) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

func (s *API) record(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next(w, r)
	}
}

func (s *API) list(w http.ResponseWriter, _ *http.Request) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	s.mu.Unlock()

	return web.EncodeJSON(w, users, http.StatusOK)
}

func (s *API) get(w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	s.mu.Lock()
	user, ok := s.users[id]
	s.mu.Unlock()

	if !ok {
		return web.NotFoundErrorf("user %s not found", id)
	}

	return web.EncodeJSON(w, user, http.StatusOK)
}

func (s *API) create(w http.ResponseWriter, r *http.Request) error {
	var user map[string]any
	if err := web.DecodeJSON(r, &user); err != nil {
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	user = withID(user, id.String())

	s.mu.Lock()
	s.users[id.String()] = user
	s.mu.Unlock()

	return web.EncodeJSON(w, user, http.StatusCreated)
}

func (s *API) update(w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	var user map[string]any
	if err := web.DecodeJSON(r, &user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return web.NotFoundErrorf("user %s not found", id)
	}

	user = withID(user, id)
	s.users[id] = user

	return web.EncodeJSON(w, user, http.StatusOK)
}

func (s *API) delete(w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return web.NotFoundErrorf("user %s not found", id)
	}
	delete(s.users, id)

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func withID(user map[string]any, id string) map[string]any {
	out := make(map[string]any, len(user)+1)
	for k, v := range user {
		out[k] = v
	}
	out["id"] = id
	return out
}
