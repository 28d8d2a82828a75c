package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/store"
)

// GET /sessions/{sessionID}/report
func GetReportHandler(reg *registry.Registry) http.HandlerFunc {
	return withSession(reg, func(w http.ResponseWriter, r *http.Request, s *registry.Session) {
		rep, ok := s.Report()
		if !ok {
			http.Error(w, "session still in progress", http.StatusConflict)
			return
		}
		_ = json.NewEncoder(w).Encode(rep)
	})
}

// GET /results?limit=&offset=
func ListResultsHandler(results store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		out, err := results.ListSessions(r.Context(), limit, offset)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if out == nil {
			out = []store.Summary{}
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// GET /results/{sessionID}
func GetResultHandler(results store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := results.GetReport(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(rep)
	}
}
