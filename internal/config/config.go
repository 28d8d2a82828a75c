package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// BankPath locates the CSV question bank loaded once at startup.
	BankPath string

	// AdvanceDelay is the pause between a single-answer submission and
	// the automatic advance to the next question.
	AdvanceDelay time.Duration

	AuthSecret       string
	OperatorUser     string
	OperatorPassHash string // bcrypt

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		BankPath:         envOr("BANK_PATH", "./questions.csv"),
		AdvanceDelay:     envDurationMS("ADVANCE_DELAY_MS", 400*time.Millisecond),
		AuthSecret:       envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		OperatorUser:     envOr("OPERATOR_USER", "operator"),
		OperatorPassHash: envOr("OPERATOR_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDurationMS(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
