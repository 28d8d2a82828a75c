// Package http exposes the quiz session protocol over chi routes. It
// is a thin action boundary: controllers own all session state, and
// recoverable input errors come back as status messages, never as
// server faults.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/session"
)

// viewResponse is the student-facing render state. It never carries the
// answer key, only the verdict for an already-scored submission.
type viewResponse struct {
	SessionID string   `json:"session_id"`
	Index     int      `json:"index"`
	Number    int      `json:"number"` // user-facing, 1-based
	Total     int      `json:"total"`
	Kind      string   `json:"kind,omitempty"`
	Prompt    string   `json:"prompt,omitempty"`
	Options   []string `json:"options,omitempty"`
	Selection []int    `json:"selection,omitempty"`
	Answered  bool     `json:"answered"`
	Correct   *bool    `json:"is_correct,omitempty"`
	Ended     bool     `json:"ended"`
}

func toView(id string, snap session.Snapshot) viewResponse {
	v := viewResponse{
		SessionID: id,
		Index:     snap.Index,
		Number:    snap.Index + 1,
		Total:     snap.Total,
		Selection: snap.Selection,
		Answered:  snap.Answered,
		Ended:     snap.Ended,
	}
	if !snap.Ended {
		v.Kind = snap.Kind.String()
		v.Prompt = snap.Prompt
		v.Options = snap.Options
	}
	if snap.Answered {
		correct := snap.Correct
		v.Correct = &correct
	}
	return v
}

func writeView(w http.ResponseWriter, s *registry.Session) {
	_ = json.NewEncoder(w).Encode(toView(s.ID, s.Ctrl.View()))
}

// POST /sessions
func CreateSessionHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := reg.Create()
		w.WriteHeader(http.StatusCreated)
		writeView(w, s)
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeView(w, s)
	}
}
