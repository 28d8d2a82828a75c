// Package report reduces a finished session's ledger into an aggregate
// score and an ordered export record.
package report

import (
	"strconv"
	"strings"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/session"
)

// Row is one exported answer line.
type Row struct {
	Prompt        string `json:"prompt"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"is_correct"`
}

// Report is the end-of-session result.
type Report struct {
	TotalQuestions int   `json:"total_questions"`
	CorrectCount   int   `json:"correct_count"`
	Rows           []Row `json:"rows"`
}

// Build joins the ledger with the bank in question order. Questions the
// user never answered contribute no row and do not count against the
// score; TotalQuestions still reflects the whole bank.
func Build(b *bank.Bank, ledger *session.Ledger) Report {
	rep := Report{TotalQuestions: b.Count()}
	for _, rec := range ledger.All() {
		q, err := b.Get(rec.QuestionIndex)
		if err != nil {
			continue // ledger indexes come from the controller; unreachable on a live session
		}
		if rec.Correct {
			rep.CorrectCount++
		}
		rep.Rows = append(rep.Rows, Row{
			Prompt:        q.Prompt,
			UserAnswer:    FormatAnswer(rec.Selection),
			CorrectAnswer: FormatAnswer(rec.Answer),
			Correct:       rec.Correct,
		})
	}
	return rep
}

// FormatAnswer renders option numbers in the bank's own answer notation
// ("2", or "1|3" for sets).
func FormatAnswer(options []int) string {
	parts := make([]string, len(options))
	for i, n := range options {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "|")
}
