package bank

import "fmt"

// Kind distinguishes the two supported question types.
type Kind int

const (
	KindSingle Kind = iota // one correct option out of 4
	KindMulti              // non-empty subset of up to 5 options
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMulti:
		return "multi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps the tabular source's kind column onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "single":
		return KindSingle, nil
	case "multi":
		return KindMulti, nil
	default:
		return 0, fmt.Errorf("unknown question kind %q", s)
	}
}

// Row is the raw shape one question arrives in from the tabular source.
// Answer holds a single identifier ("2") or a pipe-delimited set ("1|3").
// Trailing options may be blank for multi questions.
type Row struct {
	Kind    string
	Prompt  string
	Options [maxOptions]string
	Answer  string
}

// Question is a validated bank entry. Options holds only the populated
// options; Answer holds 1-based option numbers, sorted ascending.
type Question struct {
	Index   int
	Prompt  string
	Options []string
	Kind    Kind
	Answer  []int
}

const (
	maxOptions    = 5
	singleOptions = 4
)
