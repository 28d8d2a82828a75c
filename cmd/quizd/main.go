package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/quizdesk/quizdesk/internal/api/http"
	"github.com/quizdesk/quizdesk/internal/auth"
	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/db"
	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/store"
)

func main() {
	cfg := config.FromEnv()

	// --- Question bank (loaded once; a malformed bank aborts startup) ---
	qb, err := bank.LoadFile(cfg.BankPath)
	if err != nil {
		log.Fatalf("load question bank: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	results := store.NewSQLStore(dbh)

	reg := registry.New(qb, cfg.AdvanceDelay, results)
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.OperatorUser, cfg.OperatorPassHash)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Post("/sessions", api.CreateSessionHandler(reg))
		pr.Get("/sessions/{sessionID}", api.GetSessionHandler(reg))

		pr.Post("/sessions/{sessionID}/select", api.SelectSingleHandler(reg))
		pr.Post("/sessions/{sessionID}/toggle", api.ToggleOptionHandler(reg))
		pr.Post("/sessions/{sessionID}/confirm", api.ConfirmMultiHandler(reg))
		pr.Post("/sessions/{sessionID}/next", api.NextHandler(reg))
		pr.Post("/sessions/{sessionID}/prev", api.PrevHandler(reg))
		pr.Post("/sessions/{sessionID}/jump", api.JumpHandler(reg))

		pr.Get("/sessions/{sessionID}/report", api.GetReportHandler(reg))
		pr.Get("/results", api.ListResultsHandler(results))
		pr.Get("/results/{sessionID}", api.GetResultHandler(results))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, bank=%s, %d questions)", cfg.HTTPAddr, cfg.DBDriver, cfg.BankPath, qb.Count())
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
