package bank

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrIndexOutOfRange reports a lookup outside [0, Count). It signals a
// caller bug, never bad user input.
var ErrIndexOutOfRange = errors.New("question index out of range")

// Issue captures one validation problem in a bank row.
type Issue struct {
	Row     int // zero-based position in the source
	Field   string
	Message string
}

// MalformedBankError reports every row that failed validation. The
// session cannot start on a bank that produced one.
type MalformedBankError struct {
	Issues []Issue
}

func (e *MalformedBankError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("row %d %s: %s", issue.Row, issue.Field, issue.Message))
	}
	return "malformed question bank: " + strings.Join(parts, "; ")
}

// Bank is an immutable ordered question collection.
type Bank struct {
	questions []Question
}

// Load validates rows and builds a Bank. Any invalid row contributes to
// the returned MalformedBankError; a partially valid bank is never built.
func Load(rows []Row) (*Bank, error) {
	var issues []Issue
	add := func(row int, field, message string) {
		issues = append(issues, Issue{Row: row, Field: field, Message: message})
	}

	questions := make([]Question, 0, len(rows))
	for i, row := range rows {
		kind, err := ParseKind(strings.TrimSpace(row.Kind))
		if err != nil {
			add(i, "kind", err.Error())
			continue
		}

		prompt := strings.TrimSpace(row.Prompt)
		if prompt == "" {
			add(i, "prompt", "is required")
		}

		options, ok := collectOptions(row, kind, i, add)
		answer := parseAnswer(row.Answer, kind, len(options), i, add)
		if prompt == "" || !ok || answer == nil {
			continue
		}

		questions = append(questions, Question{
			Index:   len(questions),
			Prompt:  prompt,
			Options: options,
			Kind:    kind,
			Answer:  answer,
		})
	}

	if len(issues) > 0 {
		return nil, &MalformedBankError{Issues: issues}
	}
	if len(questions) == 0 {
		return nil, &MalformedBankError{Issues: []Issue{{Field: "rows", Message: "bank has no questions"}}}
	}
	return &Bank{questions: questions}, nil
}

// Get returns the question at index i.
func (b *Bank) Get(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(b.questions))
	}
	return b.questions[i], nil
}

// Count returns the number of questions.
func (b *Bank) Count() int { return len(b.questions) }

// collectOptions returns the populated option prefix. Blank trailing
// options are allowed for multi questions only; a blank before a
// populated option is a gap and rejects the row.
func collectOptions(row Row, kind Kind, rowIdx int, add func(int, string, string)) ([]string, bool) {
	limit := maxOptions
	if kind == KindSingle {
		limit = singleOptions
	}
	var options []string
	blankAt := -1
	for n := 0; n < limit; n++ {
		text := strings.TrimSpace(row.Options[n])
		if text == "" {
			if blankAt == -1 {
				blankAt = n
			}
			continue
		}
		if blankAt != -1 {
			add(rowIdx, fmt.Sprintf("option%d", blankAt+1), "blank option before a populated one")
			return nil, false
		}
		options = append(options, text)
	}
	if len(options) == 0 {
		add(rowIdx, "options", "at least one non-blank option is required")
		return nil, false
	}
	if kind == KindSingle && len(options) != singleOptions {
		add(rowIdx, "options", fmt.Sprintf("single-answer questions need %d options, got %d", singleOptions, len(options)))
		return nil, false
	}
	return options, true
}

// parseAnswer converts the answer column into sorted 1-based option
// numbers, or nil after reporting issues.
func parseAnswer(raw string, kind Kind, optionCount, rowIdx int, add func(int, string, string)) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		add(rowIdx, "answer", "is required")
		return nil
	}

	if kind == KindSingle {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > singleOptions {
			add(rowIdx, "answer", fmt.Sprintf("%q is not an option number in 1..%d", raw, singleOptions))
			return nil
		}
		return []int{n}
	}

	parts := strings.Split(raw, "|")
	seen := make(map[int]struct{}, len(parts))
	answer := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > optionCount {
			add(rowIdx, "answer", fmt.Sprintf("%q is not an option number in 1..%d", part, optionCount))
			return nil
		}
		if _, dup := seen[n]; dup {
			add(rowIdx, "answer", fmt.Sprintf("duplicate option number %d", n))
			return nil
		}
		seen[n] = struct{}{}
		answer = append(answer, n)
	}
	sort.Ints(answer)
	return answer
}
