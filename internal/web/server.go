package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/feedsearch/internal/logx"
	"github.com/bornholm/feedsearch/pkg/ui"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
)

const sessionCookie = "feedsearch_session"

type Server struct {
	sessions *SessionStore
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(withRequestLogAttrs)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post("/search", s.handleSearch)
	r.Get("/state", s.handleState)

	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, exists := s.lookup(r)
	if !exists {
		sess = s.sessions.Create(r.Context())

		slog.InfoContext(r.Context(), "session created", slog.String("session", sess.ID))

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	state := sess.Controller.State()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.RenderPage(w, "/search", sess.SearchBar.Text(), state); err != nil {
		slog.ErrorContext(r.Context(), "could not render page", slog.Any("error", errors.WithStack(err)))
	}
}

// handleSearch only serves known sessions. Without one the browser is sent
// to the page, which creates it.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, exists := s.lookup(r)
	if !exists {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess.SearchBar.SetText(r.PostForm.Get("q"))
	sess.SearchBar.Submit(r.Context())

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, exists := s.lookup(r)
	if !exists {
		jsonError(w, "unknown session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sess.Controller.State()); err != nil {
		slog.ErrorContext(r.Context(), "could not encode state", slog.Any("error", errors.WithStack(err)))
	}
}

func (s *Server) lookup(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}

	return s.sessions.Lookup(cookie.Value)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func withRequestLogAttrs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logx.WithAttrs(r.Context(),
			slog.String("requestId", middleware.GetReqID(r.Context())),
			slog.String("path", r.URL.Path),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func NewServer(sessions *SessionStore) *Server {
	return &Server{
		sessions: sessions,
	}
}
