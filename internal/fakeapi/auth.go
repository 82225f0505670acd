package fakeapi

import (
	"errors"
	"net/http"
	"strings"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		s.fail(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	email := body.str("email")
	password := body.str("senha", "password")

	matches := s.accounts.all(func(acc record) bool {
		return strings.EqualFold(acc.str("email"), email)
	})
	if len(matches) == 0 || !s.checkPassword(matches[0].str("id"), password) {
		s.fail(w, http.StatusUnauthorized, "Email ou senha inválidos")
		return
	}

	acc := matches[0]
	token, err := s.IssueToken(acc.str("id"), acc.str("tipo"), s.now().Add(s.ttl))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "token signing failed", "error", err)
		s.fail(w, http.StatusInternalServerError, "Erro ao gerar token")
		return
	}
	s.send(w, http.StatusOK, map[string]any{"token": token, "user": acc})
}

func (s *Server) checkPassword(id, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.passwords[id]
	return ok && password != "" && want == password
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		s.fail(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	id, err := s.AddUser(
		body.str("nome", "name"),
		body.str("email"),
		body.str("senha", "password"),
		body.str("tipo", "role"),
	)
	if !s.accountError(w, err) {
		return
	}
	acc, _ := s.accounts.get(id)
	s.send(w, http.StatusCreated, acc)
}

// accountError writes the response for a failed account write and reports
// whether err was nil.
func (s *Server) accountError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrMissingFields):
		s.fail(w, http.StatusBadRequest, "Nome, email e senha são obrigatórios")
	case errors.Is(err, ErrEmailTaken):
		s.fail(w, http.StatusConflict, "Email já cadastrado")
	default:
		s.fail(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
	return false
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.send(w, http.StatusOK, accountFrom(r.Context()))
}
