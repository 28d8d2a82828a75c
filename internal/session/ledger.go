package session

import "sort"

// Record is the ledger entry for one question: the latest submission,
// the answer key it was scored against, and the verdict.
type Record struct {
	QuestionIndex int
	Selection     []int // chosen 1-based option numbers, sorted
	Answer        []int // correct 1-based option numbers, sorted
	Correct       bool
}

// Ledger is the authoritative per-session store of recorded answers,
// keyed by question index. It holds at most one record per index;
// re-answering overwrites. Entries are never removed during a session.
// The owning Controller synchronizes all access.
type Ledger struct {
	records map[int]Record
}

func NewLedger() *Ledger {
	return &Ledger{records: map[int]Record{}}
}

// Put upserts the record for its question index.
func (l *Ledger) Put(rec Record) {
	rec.Selection = append([]int(nil), rec.Selection...)
	rec.Answer = append([]int(nil), rec.Answer...)
	l.records[rec.QuestionIndex] = rec
}

// Get returns the record for index i, if one was ever submitted.
func (l *Ledger) Get(i int) (Record, bool) {
	rec, ok := l.records[i]
	return rec, ok
}

// All returns every record sorted by question index.
func (l *Ledger) All() []Record {
	out := make([]Record, 0, len(l.records))
	for _, rec := range l.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionIndex < out[j].QuestionIndex })
	return out
}

// Len returns the number of answered questions.
func (l *Ledger) Len() int { return len(l.records) }
