package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/session"
)

// writeActionErr maps controller errors onto status codes. Input-driven
// errors stay 4xx with the controller's message as the user-visible
// status line.
func writeActionErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidJumpTarget),
		errors.Is(err, session.ErrInvalidSelection),
		errors.Is(err, session.ErrWrongKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrSessionEnded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func withSession(reg *registry.Registry, fn func(http.ResponseWriter, *http.Request, *registry.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		fn(w, r, s)
	}
}

type optionRequest struct {
	Option int `json:"option"`
}

// POST /sessions/{sessionID}/select  {"option": 2}
func SelectSingleHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		var req optionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if _, err := s.Ctrl.SubmitSingle(req.Option); err != nil {
			writeActionErr(w, err)
			return
		}
		writeView(w, s)
	})
}

// POST /sessions/{sessionID}/toggle  {"option": 3}
func ToggleOptionHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		var req optionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := s.Ctrl.ToggleOption(req.Option); err != nil {
			writeActionErr(w, err)
			return
		}
		writeView(w, s)
	})
}

// POST /sessions/{sessionID}/confirm
func ConfirmMultiHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		if _, err := s.Ctrl.ConfirmMulti(); err != nil {
			writeActionErr(w, err)
			return
		}
		writeView(w, s)
	})
}

// POST /sessions/{sessionID}/next
func NextHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		if err := s.Ctrl.Next(); err != nil {
			writeActionErr(w, err)
			return
		}
		writeView(w, s)
	})
}

// POST /sessions/{sessionID}/prev
func PrevHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		if err := s.Ctrl.Prev(); err != nil {
			writeActionErr(w, err)
			return
		}
		writeView(w, s)
	})
}

// POST /sessions/{sessionID}/jump  {"target": "5"}
func JumpHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		var req struct {
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := s.Ctrl.JumpTo(req.Target); err != nil {
			writeActionErr(w, err)
			return
		}
		writeView(w, s)
	})
}
