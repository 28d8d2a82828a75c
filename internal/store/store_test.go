package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/quizdesk/quizdesk/internal/report"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.GetReport(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing err = %v", err)
	}

	for i := 0; i < 5; i++ {
		rep := report.Report{
			TotalQuestions: 3,
			CorrectCount:   i % 3,
			Rows:           []report.Row{{Prompt: "p", UserAnswer: "1", CorrectAnswer: "1", Correct: true}},
		}
		id := fmt.Sprintf("s%d", i)
		if err := m.SaveReport(ctx, id, rep, int64(100+i)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	rep, err := m.GetReport(ctx, "s3")
	if err != nil || rep.CorrectCount != 0 || len(rep.Rows) != 1 {
		t.Fatalf("get = %+v, err = %v", rep, err)
	}

	list, err := m.ListSessions(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "s4" || list[1].ID != "s3" {
		t.Fatalf("list = %+v, want newest first", list)
	}

	page, err := m.ListSessions(ctx, 2, 4)
	if err != nil || len(page) != 1 || page[0].ID != "s0" {
		t.Fatalf("page = %+v, err = %v", page, err)
	}

	if all, _ := m.ListSessions(ctx, 0, 10); len(all) != 0 {
		t.Fatalf("offset past end = %+v", all)
	}
}
