// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Database credentials and the JWT secret are required;
// everything else falls back to a sensible default.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	DBTLS          bool          // enable TLS on the database connection
	DBMaxOpen      int           // max open connections in the pool
	DBMaxIdle      int           // max idle connections in the pool
	DBConnLifetime time.Duration // lifetime of a pooled connection

	JWTSecret  string        // secret used to sign JWTs
	JWTTTL     time.Duration // access token time-to-live
	BcryptCost int           // bcrypt cost for password hashing

	RequestTimeout time.Duration // per-request timeout for DB and worker calls
	UploadDir      string        // directory for uploaded invoice PDFs
	PDFWorkerURL   string        // base URL of the external PDF extraction worker
}

// Load reads configuration from the environment. Required variables are
// enforced by must() and missing values cause the program to exit.
func Load() Config {
	return Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "3001"),

		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         must("DB_NAME"),
		DBTLS:          envBool("DB_TLS", false),
		DBMaxOpen:      envInt("DB_MAX_OPEN", 10),
		DBMaxIdle:      envInt("DB_MAX_IDLE", 0),
		DBConnLifetime: envDur("DB_CONN_LIFETIME", 30*time.Minute),

		JWTSecret:  must("JWT_SECRET"),
		JWTTTL:     envDur("JWT_TTL", 24*time.Hour),
		BcryptCost: envInt("BCRYPT_COST", 10),

		RequestTimeout: envDur("REQUEST_TIMEOUT", 30*time.Second),
		UploadDir:      envStr("UPLOAD_DIR", "uploads"),
		PDFWorkerURL:   envStr("PDF_WORKER_URL", "http://localhost:8000"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
