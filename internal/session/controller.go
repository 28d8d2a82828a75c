// Package session implements the quiz session state machine: a cursor
// over an immutable question bank, an answer ledger with recall, and
// the submission protocol for single- and multi-answer questions.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/scoring"
)

var (
	// ErrInvalidJumpTarget reports a non-numeric or out-of-bounds jump
	// input. The session state is unchanged; callers surface it as a
	// status message.
	ErrInvalidJumpTarget = errors.New("invalid jump target")

	// ErrInvalidSelection reports an option number outside the current
	// question's populated range.
	ErrInvalidSelection = errors.New("selection outside option range")

	// ErrWrongKind reports a single-answer operation on a multi-answer
	// question or vice versa.
	ErrWrongKind = errors.New("operation does not match question kind")

	// ErrSessionEnded reports an operation after the terminal state.
	ErrSessionEnded = errors.New("session has ended")
)

// Option configures a Controller.
type Option func(*Controller)

// WithAutoAdvance sets the pause between a single-answer submission and
// the automatic advance to the next question. Zero advances
// synchronously inside SubmitSingle; without this option single-answer
// submissions do not advance at all.
func WithAutoAdvance(d time.Duration) Option {
	return func(c *Controller) { c.advanceDelay = d }
}

// WithAdvanceNotify registers a callback invoked after a deferred
// auto-advance lands, so an interactive surface can re-render. It runs
// on the timer goroutine.
func WithAdvanceNotify(fn func()) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithEndHook registers a callback invoked exactly once when the
// session reaches its terminal state.
func WithEndHook(fn func()) Option {
	return func(c *Controller) { c.onEnd = fn }
}

// Controller drives one user through one ordered question list. It is
// logically a single-actor state machine; the mutex only guards against
// transport layers delivering actions on different goroutines.
type Controller struct {
	mu     sync.Mutex
	bank   *bank.Bank
	ledger *Ledger
	cursor int
	draft  map[int]struct{} // multi-answer toggles for the current question
	ended  bool

	advanceDelay time.Duration // -1 means no auto-advance
	notify       func()
	onEnd        func()
	gen          uint64 // navigation generation; stale timers check it
	pending      *time.Timer
}

// New builds a controller positioned at the first question.
func New(b *bank.Bank, opts ...Option) *Controller {
	c := &Controller{
		bank:         b,
		ledger:       NewLedger(),
		advanceDelay: -1,
		draft:        map[int]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.arriveLocked()
	return c
}

// Ledger exposes the answer ledger for report building. Callers must
// not read it concurrently with live session operations.
func (c *Controller) Ledger() *Ledger { return c.ledger }

// Bank returns the question bank the session runs over.
func (c *Controller) Bank() *bank.Bank { return c.bank }

// Snapshot is the render state for the current position.
type Snapshot struct {
	Index     int    // zero-based cursor
	Total     int    // question count
	Prompt    string
	Options   []string
	Kind      bank.Kind
	Selection []int // recalled or in-progress selection, sorted
	Answered  bool
	Correct   bool // meaningful only when Answered
	Ended     bool
}

// View returns the current render state, restoring any recorded
// selection and verdict for the question under the cursor.
func (c *Controller) View() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Index: c.cursor, Total: c.bank.Count(), Ended: c.ended}
	if c.ended {
		return snap
	}
	q := c.currentLocked()
	snap.Prompt = q.Prompt
	snap.Options = append([]string(nil), q.Options...)
	snap.Kind = q.Kind

	rec, answered := c.ledger.Get(c.cursor)
	snap.Answered = answered
	snap.Correct = answered && rec.Correct
	if q.Kind == bank.KindMulti {
		snap.Selection = c.draftLocked()
	} else if answered {
		snap.Selection = append([]int(nil), rec.Selection...)
	}
	return snap
}

// SubmitSingle records and scores a single-answer choice; choosing is
// itself the submit trigger. When auto-advance is configured the
// controller then moves to the next question after the pause, unless a
// later navigation supersedes it.
func (c *Controller) SubmitSingle(option int) (Record, error) {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return Record{}, ErrSessionEnded
	}
	q := c.currentLocked()
	if q.Kind != bank.KindSingle {
		c.mu.Unlock()
		return Record{}, fmt.Errorf("%w: question %d is %s", ErrWrongKind, c.cursor+1, q.Kind)
	}
	if option < 1 || option > len(q.Options) {
		c.mu.Unlock()
		return Record{}, fmt.Errorf("%w: %d of 1..%d", ErrInvalidSelection, option, len(q.Options))
	}

	selection := []int{option}
	rec := Record{
		QuestionIndex: c.cursor,
		Selection:     selection,
		Answer:        q.Answer,
		Correct:       scoring.Verdict(q, selection),
	}
	c.ledger.Put(rec)

	c.supersedeLocked()
	fire := false
	switch {
	case c.advanceDelay < 0:
		// manual pacing
	case c.advanceDelay == 0:
		fire = c.advanceLocked()
	default:
		gen := c.gen
		c.pending = time.AfterFunc(c.advanceDelay, func() { c.autoAdvance(gen) })
	}
	c.mu.Unlock()

	c.fireEnd(fire)
	return rec, nil
}

// ToggleOption flips one option in the in-progress multi-answer
// selection. Toggling never scores; only ConfirmMulti does.
func (c *Controller) ToggleOption(option int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ended {
		return ErrSessionEnded
	}
	q := c.currentLocked()
	if q.Kind != bank.KindMulti {
		return fmt.Errorf("%w: question %d is %s", ErrWrongKind, c.cursor+1, q.Kind)
	}
	if option < 1 || option > len(q.Options) {
		return fmt.Errorf("%w: %d of 1..%d", ErrInvalidSelection, option, len(q.Options))
	}
	if _, on := c.draft[option]; on {
		delete(c.draft, option)
	} else {
		c.draft[option] = struct{}{}
	}
	return nil
}

// ConfirmMulti scores the toggled set against the answer key. An empty
// selection is legal and simply wrong. Re-confirming overwrites the
// earlier record.
func (c *Controller) ConfirmMulti() (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ended {
		return Record{}, ErrSessionEnded
	}
	q := c.currentLocked()
	if q.Kind != bank.KindMulti {
		return Record{}, fmt.Errorf("%w: question %d is %s", ErrWrongKind, c.cursor+1, q.Kind)
	}

	selection := c.draftLocked()
	rec := Record{
		QuestionIndex: c.cursor,
		Selection:     selection,
		Answer:        q.Answer,
		Correct:       scoring.Verdict(q, selection),
	}
	c.ledger.Put(rec)
	return rec, nil
}

// Next moves to the following question, or ends the session when the
// cursor is already on the last one.
func (c *Controller) Next() error {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return ErrSessionEnded
	}
	c.supersedeLocked()
	fire := c.advanceLocked()
	c.mu.Unlock()

	c.fireEnd(fire)
	return nil
}

// Prev moves to the preceding question; a no-op at the first one.
func (c *Controller) Prev() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ended {
		return ErrSessionEnded
	}
	c.supersedeLocked()
	if c.cursor > 0 {
		c.cursor--
		c.arriveLocked()
	}
	return nil
}

// JumpTo parses a user-facing 1-based question number and moves the
// cursor there. On ErrInvalidJumpTarget the state, including any
// pending auto-advance, is left untouched.
func (c *Controller) JumpTo(input string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ended {
		return ErrSessionEnded
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidJumpTarget, input)
	}
	if n < 1 || n > c.bank.Count() {
		return fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidJumpTarget, n, c.bank.Count())
	}
	c.supersedeLocked()
	c.cursor = n - 1
	c.arriveLocked()
	return nil
}

// Ended reports whether the session reached its terminal state.
func (c *Controller) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ended
}

// advanceLocked moves the cursor forward, or flips to ENDED on the last
// question. It returns whether the end hook must fire.
func (c *Controller) advanceLocked() bool {
	if c.cursor < c.bank.Count()-1 {
		c.cursor++
		c.arriveLocked()
		return false
	}
	c.ended = true
	return true
}

// supersedeLocked invalidates any pending auto-advance: the most recent
// navigation always wins.
func (c *Controller) supersedeLocked() {
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) autoAdvance(gen uint64) {
	c.mu.Lock()
	if c.ended || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	fire := c.advanceLocked()
	c.mu.Unlock()

	c.fireEnd(fire)
	if c.notify != nil {
		c.notify()
	}
}

func (c *Controller) fireEnd(fire bool) {
	if fire && c.onEnd != nil {
		c.onEnd()
	}
}

// arriveLocked restores the in-progress selection for the question
// under the cursor from the ledger, or clears it.
func (c *Controller) arriveLocked() {
	c.draft = map[int]struct{}{}
	if rec, ok := c.ledger.Get(c.cursor); ok {
		for _, n := range rec.Selection {
			c.draft[n] = struct{}{}
		}
	}
}

func (c *Controller) draftLocked() []int {
	out := make([]int, 0, len(c.draft))
	for n := range c.draft {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// currentLocked fetches the question under the cursor. The cursor is
// bounds-checked by every mutation, so a failure here is an internal
// consistency fault.
func (c *Controller) currentLocked() bank.Question {
	q, err := c.bank.Get(c.cursor)
	if err != nil {
		panic(err)
	}
	return q
}
