// Package registry tracks live quiz sessions by id and hands each
// finished session's report to the result store.
package registry

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/report"
	"github.com/quizdesk/quizdesk/internal/session"
	"github.com/quizdesk/quizdesk/internal/store"
)

// Session pairs a controller with its id and, once ended, its report.
type Session struct {
	ID   string
	Ctrl *session.Controller

	mu  sync.Mutex
	rep *report.Report
}

// Report returns the built report once the session has ended.
func (s *Session) Report() (report.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rep == nil {
		return report.Report{}, false
	}
	return *s.rep, true
}

// Registry creates and resolves sessions over one shared bank and
// controller configuration. Sessions are independent single-actor
// state machines; the registry only guards its own map.
type Registry struct {
	bank    *bank.Bank
	delay   time.Duration
	results store.Store

	mu       sync.RWMutex
	sessions map[string]*Session
}

func New(b *bank.Bank, advanceDelay time.Duration, results store.Store) *Registry {
	return &Registry{
		bank:     b,
		delay:    advanceDelay,
		results:  results,
		sessions: map[string]*Session{},
	}
}

// Create starts a fresh session at the first question.
func (r *Registry) Create() *Session {
	s := &Session{ID: uuid.NewString()}
	s.Ctrl = session.New(r.bank,
		session.WithAutoAdvance(r.delay),
		session.WithEndHook(func() { r.finish(s) }),
	)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get resolves a session id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// finish runs once per session, on the transition to ENDED: it builds
// the report and persists it.
func (r *Registry) finish(s *Session) {
	rep := report.Build(r.bank, s.Ctrl.Ledger())

	s.mu.Lock()
	s.rep = &rep
	s.mu.Unlock()

	if r.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.results.SaveReport(ctx, s.ID, rep, time.Now().Unix()); err != nil {
		log.Printf("save report %s: %v", s.ID, err)
	}
}
