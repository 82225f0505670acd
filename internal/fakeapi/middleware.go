package fakeapi

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/classroom/pkg/logger"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// stackSize caps the stack trace logged for a recovered panic.
const stackSize = 4096

type (
	requestIDKey struct{}
	accountKey   struct{}
)

// RequestIDFromContext returns the id assigned by RequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// RequestID keeps an incoming X-Request-ID or generates one, echoes it in
// the response and stores it in the request context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recover turns a panic into a 500 and logs it with the stack.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				stack := make([]byte, stackSize)
				stack = stack[:runtime.Stack(stack, false)]
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(stack)),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"message":"Erro interno do servidor"}`))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Logging writes one line per request.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			}
			if id, ok := RequestIDFromContext(r.Context()); ok {
				attrs = append(attrs, slog.String("request_id", id))
			}
			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "request", attrs...)
		})
	}
}

// RequestIDExtractor adds the request id to log records.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := RequestIDFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}

// authenticator rejects requests without a valid token for an existing
// account and stores the account in the context.
func (s *Server) authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			s.fail(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}
		sub, _ := claims["sub"].(string)
		acc, ok := s.accounts.get(sub)
		if !ok {
			s.fail(w, http.StatusUnauthorized, "Usuário não encontrado")
			return
		}
		ctx := context.WithValue(r.Context(), accountKey{}, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) professorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc := accountFrom(r.Context())
		if acc.str("tipo") != RoleProfessor {
			s.fail(w, http.StatusForbidden, "Acesso restrito a professores")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accountFrom(ctx context.Context) record {
	acc, _ := ctx.Value(accountKey{}).(record)
	return acc
}
