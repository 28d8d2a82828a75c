// Package store persists finished session reports.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/quizdesk/quizdesk/internal/report"
)

// ErrNotFound reports an unknown session id.
var ErrNotFound = errors.New("session not found")

// Summary is one line of the session listing.
type Summary struct {
	ID             string `json:"id"`
	TotalQuestions int    `json:"total_questions"`
	CorrectCount   int    `json:"correct_count"`
	FinishedAt     int64  `json:"finished_at"`
}

// Store is the result sink plus the read side for dashboards.
type Store interface {
	SaveReport(ctx context.Context, id string, rep report.Report, finishedAt int64) error
	GetReport(ctx context.Context, id string) (report.Report, error)
	ListSessions(ctx context.Context, limit, offset int) ([]Summary, error)
}

type memoryStore struct {
	mu        sync.RWMutex
	reports   map[string]report.Report
	summaries map[string]Summary
}

// NewMemory builds an in-memory store for tests and storage-less runs.
func NewMemory() Store {
	return &memoryStore{
		reports:   map[string]report.Report{},
		summaries: map[string]Summary{},
	}
}

func (m *memoryStore) SaveReport(_ context.Context, id string, rep report.Report, finishedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[id] = rep
	m.summaries[id] = Summary{
		ID:             id,
		TotalQuestions: rep.TotalQuestions,
		CorrectCount:   rep.CorrectCount,
		FinishedAt:     finishedAt,
	}
	return nil
}

func (m *memoryStore) GetReport(_ context.Context, id string) (report.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rep, ok := m.reports[id]
	if !ok {
		return report.Report{}, ErrNotFound
	}
	return rep, nil
}

func (m *memoryStore) ListSessions(_ context.Context, limit, offset int) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.summaries))
	for _, s := range m.summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FinishedAt != out[j].FinishedAt {
			return out[i].FinishedAt > out[j].FinishedAt
		}
		return out[i].ID < out[j].ID
	})
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
