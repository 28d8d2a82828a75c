package bank

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func singleRow(prompt, answer string) Row {
	return Row{
		Kind:    "single",
		Prompt:  prompt,
		Options: [5]string{"a", "b", "c", "d"},
		Answer:  answer,
	}
}

func multiRow(prompt, answer string, options ...string) Row {
	row := Row{Kind: "multi", Prompt: prompt, Answer: answer}
	copy(row.Options[:], options)
	return row
}

func TestLoadValid(t *testing.T) {
	b, err := Load([]Row{
		singleRow("pick one", "2"),
		multiRow("pick some", "3|1", "a", "b", "c"),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Count() != 2 {
		t.Fatalf("count = %d, want 2", b.Count())
	}

	q, err := b.Get(0)
	if err != nil {
		t.Fatalf("get 0: %v", err)
	}
	if q.Kind != KindSingle || !reflect.DeepEqual(q.Answer, []int{2}) {
		t.Fatalf("unexpected question: %+v", q)
	}

	q, _ = b.Get(1)
	if !reflect.DeepEqual(q.Answer, []int{1, 3}) {
		t.Fatalf("multi answer = %v, want sorted [1 3]", q.Answer)
	}
	if len(q.Options) != 3 {
		t.Fatalf("blank trailing options kept: %v", q.Options)
	}
}

func TestLoadRejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name  string
		row   Row
		field string
	}{
		{"missing prompt", singleRow("", "1"), "prompt"},
		{"no options", Row{Kind: "multi", Prompt: "p", Answer: "1"}, "options"},
		{"single with 3 options", Row{Kind: "single", Prompt: "p", Options: [5]string{"a", "b", "c"}, Answer: "1"}, "options"},
		{"single answer out of range", singleRow("p", "5"), "answer"},
		{"single answer not numeric", singleRow("p", "b"), "answer"},
		{"multi answer out of range", multiRow("p", "1|4", "a", "b", "c"), "answer"},
		{"multi duplicate answer", multiRow("p", "1|1", "a", "b", "c"), "answer"},
		{"multi empty answer", multiRow("p", "", "a", "b", "c"), "answer"},
		{"option gap", multiRow("p", "1", "a", "", "c"), "option2"},
		{"unknown kind", Row{Kind: "essay", Prompt: "p", Answer: "1"}, "kind"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]Row{tc.row})
			var mbe *MalformedBankError
			if !errors.As(err, &mbe) {
				t.Fatalf("err = %v, want MalformedBankError", err)
			}
			found := false
			for _, issue := range mbe.Issues {
				if issue.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("no issue for field %q in %v", tc.field, mbe.Issues)
			}
		})
	}
}

func TestLoadEmptyBank(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for empty bank")
	}
}

func TestGetOutOfRange(t *testing.T) {
	b, err := Load([]Row{singleRow("p", "1")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, i := range []int{-1, 1, 99} {
		if _, err := b.Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Get(%d) err = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestReadCSV(t *testing.T) {
	src := strings.Join([]string{
		"kind,prompt,option1,option2,option3,option4,option5,answer",
		`single,pick one,a,b,c,d,,2`,
		`multi,pick some,a,b,c,,,1|3`,
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Kind != "single" || rows[0].Answer != "2" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Options[2] != "c" || rows[1].Options[3] != "" {
		t.Fatalf("unexpected options: %v", rows[1].Options)
	}

	if _, err := Load(rows); err != nil {
		t.Fatalf("load parsed rows: %v", err)
	}
}

func TestReadCSVWrongColumnCount(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("single,pick one,a,b\n")); err == nil {
		t.Fatal("expected error for short record")
	}
}
