// Package http expone la superficie del servicio: login-completion,
// session-population, health y métricas.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/login"
	"github.com/dropDatabas3/idbridge/internal/session"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

type Server struct {
	Login     *login.Service
	Populator *session.Populator
}

// NewRouter builds the chi router with logging on every route.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(withLogging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/v1/login/external", s.handleExternalLogin)
	r.Post("/v1/session/populate", s.handlePopulate)
	return r
}

// Start arranca el servidor HTTP.
func Start(addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}
	return srv.ListenAndServe()
}

// ─── DTOs ───

type claimDTO struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type tokenDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type externalLoginRequest struct {
	Provider string     `json:"provider"`
	Claims   []claimDTO `json:"claims"`
	Tokens   []tokenDTO `json:"tokens"`
}

func (req *externalLoginRequest) toLoginInfo() *identity.LoginInfo {
	info := &identity.LoginInfo{Provider: req.Provider}
	for _, c := range req.Claims {
		info.Claims = append(info.Claims, identity.Claim{Type: c.Type, Value: c.Value})
	}
	for _, t := range req.Tokens {
		info.Tokens = append(info.Tokens, identity.Token{Name: t.Name, Value: t.Value})
	}
	return info
}

type populateRequest struct {
	UserID  string          `json:"user_id"`
	Session session.Session `json:"session"`
}

// ─── Handlers ───

// handleExternalLogin receives a completed handshake from the OAuth
// middleware and runs the enrichment pipeline.
func (s *Server) handleExternalLogin(w http.ResponseWriter, r *http.Request) {
	var req externalLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Provider == "" {
		writeError(w, http.StatusBadRequest, "provider required")
		return
	}

	user, err := s.Login.Complete(r.Context(), req.toLoginInfo())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login completion failed")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handlePopulate enriches a session record for the request-handling
// layer and returns the mutated record.
func (s *Server) handlePopulate(w http.ResponseWriter, r *http.Request) {
	var req populateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id required")
		return
	}

	sess := req.Session
	if err := s.Populator.Populate(r.Context(), &sess, req.UserID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "session population failed")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
