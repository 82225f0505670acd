package fakeapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// peopleHandler serves /professores or /alunos, the accounts of one role.
type peopleHandler struct {
	s    *Server
	role string
}

func (h *peopleHandler) notFound(w http.ResponseWriter) {
	if h.role == RoleProfessor {
		h.s.fail(w, http.StatusNotFound, "Professor não encontrado")
		return
	}
	h.s.fail(w, http.StatusNotFound, "Aluno não encontrado")
}

func (h *peopleHandler) find(id string) (record, bool) {
	acc, ok := h.s.accounts.get(id)
	if !ok || acc.str("tipo") != h.role {
		return nil, false
	}
	return acc, true
}

func (h *peopleHandler) list(w http.ResponseWriter, r *http.Request) {
	items := h.s.accounts.all(func(acc record) bool { return acc.str("tipo") == h.role })
	items, pg := paginate(items, r, true)
	h.s.sendList(w, items, pg)
}

func (h *peopleHandler) get(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.find(chi.URLParam(r, "id"))
	if !ok {
		h.notFound(w)
		return
	}
	h.s.send(w, http.StatusOK, acc)
}

func (h *peopleHandler) create(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		h.s.fail(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	id, err := h.s.createAccount(body.str("nome"), body.str("email"), body.str("senha"), h.role)
	if !h.s.accountError(w, err) {
		return
	}
	acc, _ := h.s.accounts.get(id)
	h.s.send(w, http.StatusCreated, acc)
}

func (h *peopleHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.find(id); !ok {
		h.notFound(w)
		return
	}
	body, ok := decodeBody(w, r)
	if !ok || !hasAll(body, "nome", "email") {
		h.s.fail(w, http.StatusBadRequest, "Nome e email são obrigatórios")
		return
	}
	acc, found, err := h.s.accounts.update(id, func(acc record, others []record) error {
		email := body.str("email")
		for _, o := range others {
			if strings.EqualFold(o.str("email"), email) {
				return ErrEmailTaken
			}
		}
		acc["nome"] = body.str("nome")
		acc["email"] = email
		return nil
	})
	switch {
	case !found:
		h.notFound(w)
	case err != nil:
		h.s.accountError(w, err)
	default:
		h.s.send(w, http.StatusOK, acc)
	}
}

func (h *peopleHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.find(id); !ok || !h.s.accounts.remove(id) {
		h.notFound(w)
		return
	}
	h.s.mu.Lock()
	delete(h.s.passwords, id)
	h.s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
