package ledger

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven settings for the ledger service.
type Config struct {
	Addr               string
	MaxUploadBytes     int64
	RateLimitPerMinute int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	BudgetPath         string
}

func LoadConfig() Config {
	return Config{
		Addr:               getenv("LEDGER_ADDR", ":8080"),
		MaxUploadBytes:     int64(getInt("LEDGER_MAX_UPLOAD_BYTES", 1<<20)),
		RateLimitPerMinute: getInt("LEDGER_RATE_PER_MIN", 60),
		ReadTimeout:        getDuration("LEDGER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:       getDuration("LEDGER_WRITE_TIMEOUT", 10*time.Second),
		BudgetPath:         getenv("LEDGER_BUDGET_PATH", ""),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
