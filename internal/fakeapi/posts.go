package fakeapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var postFields = []string{"titulo", "conteudo", "autor"}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	items, pg := paginate(s.posts.all(nil), r, false)
	s.sendList(w, items, pg)
}

func (s *Server) searchPosts(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" {
		s.fail(w, http.StatusBadRequest, "Parâmetro q é obrigatório")
		return
	}
	items := s.posts.all(func(p record) bool {
		for _, f := range postFields {
			if strings.Contains(strings.ToLower(p.str(f)), q) {
				return true
			}
		}
		return false
	})
	s.sendList(w, items, nil)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.posts.get(chi.URLParam(r, "id"))
	if !ok {
		s.fail(w, http.StatusNotFound, "Post não encontrado")
		return
	}
	s.send(w, http.StatusOK, p)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok || !hasAll(body, postFields...) {
		s.fail(w, http.StatusBadRequest, "Título, conteúdo e autor são obrigatórios")
		return
	}
	id := s.AddPost(body.str("titulo"), body.str("conteudo"), body.str("autor"))
	p, _ := s.posts.get(id)
	s.send(w, http.StatusCreated, p)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok || !hasAll(body, postFields...) {
		s.fail(w, http.StatusBadRequest, "Título, conteúdo e autor são obrigatórios")
		return
	}
	p, found, _ := s.posts.update(chi.URLParam(r, "id"), func(p record, _ []record) error {
		for _, f := range postFields {
			p[f] = body.str(f)
		}
		p["data_atualizacao"] = s.timestamp()
		return nil
	})
	if !found {
		s.fail(w, http.StatusNotFound, "Post não encontrado")
		return
	}
	s.send(w, http.StatusOK, p)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.posts.remove(id) {
		s.fail(w, http.StatusNotFound, "Post não encontrado")
		return
	}
	s.mu.Lock()
	delete(s.comments, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) comment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.posts.get(id); !ok {
		s.fail(w, http.StatusNotFound, "Post não encontrado")
		return
	}
	body, ok := decodeBody(w, r)
	if !ok || !hasAll(body, "text") {
		s.fail(w, http.StatusBadRequest, "Texto do comentário é obrigatório")
		return
	}
	author := body.str("author")
	if author == "" {
		author = accountFrom(r.Context()).str("nome")
	}
	c := record{
		"id":        uuid.NewString(),
		"text":      body.str("text"),
		"author":    author,
		"createdAt": s.timestamp(),
	}
	s.mu.Lock()
	s.comments[id] = append(s.comments[id], c)
	s.mu.Unlock()
	s.send(w, http.StatusCreated, c)
}

func hasAll(r record, keys ...string) bool {
	for _, k := range keys {
		if strings.TrimSpace(r.str(k)) == "" {
			return false
		}
	}
	return true
}
