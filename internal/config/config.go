package config // package config loads gate-service configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime tuning for the tasting gate.  Everything
// except the ticket-signing secret has a venue-reasonable default so
// a booth laptop can run the service with a single env var set.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	TicketSecret   string        // server-held HMAC key for ticket signatures
	TicketTTL      time.Duration // validity window per ticket (default 30m)
	ValidateBudget time.Duration // per-scan decision budget (default 3s)

	BoothCapacity     uint    // guests served in parallel across booths
	AvgServiceMinutes float64 // mean minutes per guest at a booth

	BoothKeyHash string // bcrypt hash gating the booth endpoints; empty disables
	CatalogPath  string // optional JSON catalog file; empty uses the seed

	DBUser string // MySQL audit store; unset DB_HOST disables it
	DBPass string
	DBHost string
	DBPort string
	DBName string

	ConsumerEnabled bool // run the pour.completed log consumer
}

// Load reads configuration from the environment.  TICKET_SECRET is
// required; a gate that cannot sign tickets has nothing to do, so a
// missing secret is fatal at startup.
func Load() Config {
	return Config{
		Env:               envStr("APP_ENV", "dev"),
		Port:              envStr("APP_PORT", "8080"),
		TicketSecret:      must("TICKET_SECRET"),
		TicketTTL:         time.Duration(envInt("TICKET_TTL_MIN", 30)) * time.Minute,
		ValidateBudget:    time.Duration(envInt("VALIDATE_BUDGET_MS", 3000)) * time.Millisecond,
		BoothCapacity:     uint(envInt("BOOTH_CAPACITY", 10)),
		AvgServiceMinutes: envFloat("AVG_SERVICE_MIN", 5),
		BoothKeyHash:      os.Getenv("BOOTH_KEY_HASH"),
		CatalogPath:       os.Getenv("CATALOG_PATH"),
		DBUser:            os.Getenv("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            envStr("DB_PORT", "3306"),
		DBName:            envStr("DB_NAME", "tasting_gate"),
		ConsumerEnabled:   envBool("POUR_CONSUMER_ENABLED", false),
	}
}

// HasDB reports whether an audit database is configured.
func (c Config) HasDB() bool { return c.DBHost != "" }

// must retrieves a required environment variable or exits.
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

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
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
