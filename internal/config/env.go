package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env carries process configuration resolved once at startup.
type Env struct {
	AppAddr            string
	GinMode            string
	DatabaseDSN        string
	SessionSecret      string
	CookieName         string
	CookieSecure       bool
	AllowedEmailDomain string
	DefaultDropPoint   string
	CORSAllowedOrigins []string
}

// LoadEnv reads configuration from the environment, loading a local .env
// file first when one exists (ok if missing in prod).
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:            getenv("APP_ADDR", ":8080"),
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		DatabaseDSN:        getenv("DATABASE_DSN", defaultDSN),
		SessionSecret:      getenv("SESSION_SECRET", "super-secret-key-change-me"),
		CookieName:         getenv("COOKIE_NAME", "carpool_session"),
		CookieSecure:       os.Getenv("COOKIE_SECURE") == "true",
		AllowedEmailDomain: getenv("ALLOWED_EMAIL_DOMAIN", "@vitstudent.ac.in"),
		DefaultDropPoint:   getenv("DEFAULT_DROP_POINT", "Katpadi Railway Station"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
