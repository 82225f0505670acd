package fakeapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/classroom/pkg/health"
	"github.com/dmitrymomot/classroom/pkg/logger"
)

// Account roles as the API spells them.
const (
	RoleProfessor = "professor"
	RoleAluno     = "aluno"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Server holds the in-memory API state.
type Server struct {
	auth      *jwtauth.JWTAuth
	logger    *slog.Logger
	now       func() time.Time
	posts     *collection
	accounts  *collection
	passwords map[string]string
	comments  map[string][]record
	secret    []byte
	ttl       time.Duration
	mu        sync.Mutex
	enveloped atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithSecret sets the HS256 signing key. Default: a random key.
func WithSecret(secret []byte) Option {
	return func(s *Server) {
		if len(secret) > 0 {
			s.secret = secret
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithLogger sets the request logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEnvelope selects data-wrapped bodies from the start.
func WithEnvelope(on bool) Option {
	return func(s *Server) {
		s.enveloped.Store(on)
	}
}

// WithClock overrides the time source used for timestamps and token
// issue times.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		logger:    logger.NewNope(),
		now:       time.Now,
		posts:     newCollection(),
		accounts:  newCollection(),
		passwords: make(map[string]string),
		comments:  make(map[string][]record),
		ttl:       DefaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.secret) == 0 {
		s.secret = []byte(uuid.NewString())
	}
	s.auth = jwtauth.New("HS256", s.secret, nil)
	return s
}

// SetEnvelope switches between {"data": ...} and bare bodies.
func (s *Server) SetEnvelope(on bool) { s.enveloped.Store(on) }

// Enveloped reports the current body style.
func (s *Server) Enveloped() bool { return s.enveloped.Load() }

// AddUser creates an account and returns its id.
func (s *Server) AddUser(name, email, password, role string) (string, error) {
	switch strings.ToLower(role) {
	case RoleProfessor, "teacher":
		role = RoleProfessor
	default:
		role = RoleAluno
	}
	return s.createAccount(name, email, password, role)
}

// AddPost stores a post and returns its id.
func (s *Server) AddPost(title, content, author string) string {
	now := s.timestamp()
	r := record{
		"id":               uuid.NewString(),
		"titulo":           title,
		"conteudo":         content,
		"autor":            author,
		"data_criacao":     now,
		"data_atualizacao": now,
	}
	s.posts.insert(r, nil)
	return r["id"].(string)
}

// Comments returns the comments left on a post.
func (s *Server) Comments(postID string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(s.comments[postID]))
	for _, c := range s.comments[postID] {
		out = append(out, c)
	}
	return out
}

// IssueToken signs a token for an account id, expiring at exp.
func (s *Server) IssueToken(id, role string, exp time.Time) (string, error) {
	claims := map[string]any{"sub": id, "role": role}
	jwtauth.SetIssuedAt(claims, s.now())
	jwtauth.SetExpiry(claims, exp)
	_, token, err := s.auth.Encode(claims)
	return token, err
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID(), Recover(s.logger), Logging(s.logger))
	r.Use(jwtauth.Verifier(s.auth))

	r.Head("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
		"state": func(context.Context) error { return nil },
	}, health.WithLogger(s.logger)))

	r.Post("/auth/login", s.login)
	r.Post("/auth/register", s.register)

	r.Get("/posts", s.listPosts)
	r.Get("/posts/search", s.searchPosts)
	r.Get("/posts/{id}", s.getPost)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticator)

		r.Get("/auth/me", s.me)
		r.Post("/posts/{id}/comments", s.comment)

		for _, p := range []struct{ path, role string }{
			{"/professores", RoleProfessor},
			{"/alunos", RoleAluno},
		} {
			h := &peopleHandler{s: s, role: p.role}
			r.Get(p.path, h.list)
			r.Get(p.path+"/{id}", h.get)
			r.Group(func(r chi.Router) {
				r.Use(s.professorOnly)
				r.Post(p.path, h.create)
				r.Put(p.path+"/{id}", h.update)
				r.Delete(p.path+"/{id}", h.remove)
			})
		}

		r.Group(func(r chi.Router) {
			r.Use(s.professorOnly)
			r.Post("/posts", s.createPost)
			r.Put("/posts/{id}", s.updatePost)
			r.Delete("/posts/{id}", s.deletePost)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.fail(w, http.StatusNotFound, "Rota não encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.fail(w, http.StatusMethodNotAllowed, "Método não permitido")
	})
	return r
}

func (s *Server) createAccount(name, email, password, role string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", ErrMissingFields
	}
	r := record{
		"id":    uuid.NewString(),
		"nome":  name,
		"email": email,
		"tipo":  role,
	}
	ok := s.accounts.insert(r, func(existing record) bool {
		return strings.EqualFold(existing.str("email"), email)
	})
	if !ok {
		return "", ErrEmailTaken
	}

	id := r["id"].(string)
	s.mu.Lock()
	s.passwords[id] = password
	s.mu.Unlock()
	return id, nil
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
