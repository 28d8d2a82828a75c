package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/db"
	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/report"
	"github.com/quizdesk/quizdesk/internal/store"
	"github.com/quizdesk/quizdesk/internal/tui"
)

func main() {
	bankPath := flag.String("bank", "questions.csv", "csv question bank: kind,prompt,option1..option5,answer")
	outPath := flag.String("out", "results.csv", "csv file the final report is written to")
	delayMS := flag.Int("delay", 400, "pause in ms before auto-advancing after a single-answer submission")
	dbDriver := flag.String("db", "", "also persist the report: sqlite or postgres (empty disables)")
	dbDSN := flag.String("dsn", "", "database dsn; driver default when empty")
	flag.Parse()

	qb, err := bank.LoadFile(*bankPath)
	if err != nil {
		log.Fatalf("load question bank: %v", err)
	}

	var results store.Store
	if *dbDriver != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbh, err := db.Open(ctx, db.Driver(*dbDriver), *dbDSN)
		cancel()
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		results = store.NewSQLStore(dbh)
	}

	// The TUI owns the pacing tick, so the controller itself runs
	// without a timer here.
	reg := registry.New(qb, -1, results)
	sess := reg.Create()

	p := tea.NewProgram(tui.New(sess, time.Duration(*delayMS)*time.Millisecond))
	if _, err := p.Run(); err != nil {
		log.Fatalf("run quiz ui: %v", err)
	}

	rep, ok := sess.Report()
	if !ok {
		fmt.Println("quiz left unfinished; no report written")
		os.Exit(0)
	}
	if err := (report.CSVSink{Path: *outPath}).Write(rep); err != nil {
		log.Fatalf("write report: %v", err)
	}
	fmt.Printf("score %d/%d, report written to %s\n", rep.CorrectCount, rep.TotalQuestions, *outPath)
}
