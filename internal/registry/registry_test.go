package registry

import (
	"context"
	"testing"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/store"
)

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Load([]bank.Row{
		{Kind: "single", Prompt: "q1", Options: [5]string{"a", "b", "c", "d"}, Answer: "1"},
		{Kind: "single", Prompt: "q2", Options: [5]string{"a", "b", "c", "d"}, Answer: "2"},
	})
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return b
}

func TestFinishedSessionIsPersisted(t *testing.T) {
	results := store.NewMemory()
	reg := New(testBank(t), -1, results)

	s := reg.Create()
	if _, ok := reg.Get(s.ID); !ok {
		t.Fatalf("session %s not resolvable", s.ID)
	}
	if _, ok := s.Report(); ok {
		t.Fatal("report available before the session ended")
	}

	if _, err := s.Ctrl.SubmitSingle(1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Ctrl.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := s.Ctrl.SubmitSingle(3); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Ctrl.Next(); err != nil { // ends the session
		t.Fatalf("next at last: %v", err)
	}

	rep, ok := s.Report()
	if !ok {
		t.Fatal("report missing after end")
	}
	if rep.CorrectCount != 1 || rep.TotalQuestions != 2 {
		t.Fatalf("report = %+v", rep)
	}

	saved, err := results.GetReport(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("stored report: %v", err)
	}
	if saved.CorrectCount != 1 || len(saved.Rows) != 2 {
		t.Fatalf("stored report = %+v", saved)
	}

	list, err := results.ListSessions(context.Background(), 10, 0)
	if err != nil || len(list) != 1 || list[0].ID != s.ID {
		t.Fatalf("list = %+v, err = %v", list, err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	reg := New(testBank(t), -1, nil)

	a := reg.Create()
	b := reg.Create()
	if a.ID == b.ID {
		t.Fatal("duplicate session ids")
	}

	if _, err := a.Ctrl.SubmitSingle(1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if b.Ctrl.Ledger().Len() != 0 {
		t.Fatal("answer leaked across sessions")
	}
}
