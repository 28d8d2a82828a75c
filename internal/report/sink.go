package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Sink receives the final report; the session core never writes
// durable storage itself.
type Sink interface {
	Write(rep Report) error
}

// CSVSink writes the export rows to a file; the aggregate score is for
// display only and is not part of the export.
type CSVSink struct {
	Path string
}

func (s CSVSink) Write(rep Report) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := writeCSV(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"prompt", "user_answer", "correct_answer", "is_correct"}); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		err := cw.Write([]string{row.Prompt, row.UserAnswer, row.CorrectAnswer, strconv.FormatBool(row.Correct)})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write report csv: %w", err)
	}
	return nil
}
