package bank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// csv column layout: kind,prompt,option1,option2,option3,option4,option5,answer
const csvColumns = 8

// ReadCSV parses the tabular question source into raw rows. A header
// line is skipped when its first column equals "kind".
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse bank csv: %w", err)
	}
	if len(records) > 0 && records[0][0] == "kind" {
		records = records[1:]
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{Kind: rec[0], Prompt: rec[1], Answer: rec[7]}
		copy(row.Options[:], rec[2:7])
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadFile reads and validates a CSV question bank from disk.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank file: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	return Load(rows)
}
