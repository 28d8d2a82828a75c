package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizdesk/quizdesk/internal/report"
)

// SQLStore persists reports through database/sql. The SQL is
// driver-neutral across the sqlite and pgx drivers.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) SaveReport(ctx context.Context, id string, rep report.Report, finishedAt int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save report: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO quiz_sessions (id,total_questions,correct_count,finished_at)
		VALUES ($1,$2,$3,$4)`,
		id, rep.TotalQuestions, rep.CorrectCount, finishedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for i, row := range rep.Rows {
		_, err = tx.ExecContext(ctx, `INSERT INTO quiz_answers (session_id,position,prompt,user_answer,correct_answer,is_correct)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			id, i, row.Prompt, row.UserAnswer, row.CorrectAnswer, row.Correct)
		if err != nil {
			return fmt.Errorf("insert answer %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetReport(ctx context.Context, id string) (report.Report, error) {
	var rep report.Report
	row := s.db.QueryRowContext(ctx, `SELECT total_questions,correct_count FROM quiz_sessions WHERE id=$1`, id)
	if err := row.Scan(&rep.TotalQuestions, &rep.CorrectCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report.Report{}, ErrNotFound
		}
		return report.Report{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT prompt,user_answer,correct_answer,is_correct
		FROM quiz_answers WHERE session_id=$1 ORDER BY position`, id)
	if err != nil {
		return report.Report{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var r report.Row
		if err := rows.Scan(&r.Prompt, &r.UserAnswer, &r.CorrectAnswer, &r.Correct); err != nil {
			return report.Report{}, err
		}
		rep.Rows = append(rep.Rows, r)
	}
	return rep, rows.Err()
}

func (s *SQLStore) ListSessions(ctx context.Context, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,total_questions,correct_count,finished_at
		FROM quiz_sessions ORDER BY finished_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.TotalQuestions, &s.CorrectCount, &s.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
