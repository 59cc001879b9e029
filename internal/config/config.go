package config

import (
	"os"
	"strconv"
	"time"

	"jdm-auctions/internal/fees"

	"github.com/shopspring/decimal"
)

// Config carries runtime settings for the auction server. Everything comes
// from the environment with sensible defaults; a .env file is loaded by main
// before this runs.
type Config struct {
	Port string

	// Soft-close tuning. A bid landing within ExtendWindow of the close
	// pushes the end time out to now + ExtendAmount.
	ExtendWindow time.Duration
	ExtendAmount time.Duration

	Fees fees.Schedule
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		ExtendWindow: time.Duration(getEnvInt("EXTEND_WINDOW_SECONDS", 30)) * time.Second,
		ExtendAmount: time.Duration(getEnvInt("EXTEND_AMOUNT_SECONDS", 120)) * time.Second,
		Fees: fees.Schedule{
			Tier1Cap:         getEnvInt("FEE_TIER1_CAP", 250_000),
			Tier2Cap:         getEnvInt("FEE_TIER2_CAP", 1_000_000),
			Tier1Rate:        getEnvRate("FEE_TIER1_RATE", "0.10"),
			Tier2Rate:        getEnvRate("FEE_TIER2_RATE", "0.05"),
			Tier3Rate:        getEnvRate("FEE_TIER3_RATE", "0.02"),
			DocumentationFee: getEnvInt("FEE_DOCUMENTATION", 5_000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvRate(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	if rate, err := decimal.NewFromString(raw); err == nil {
		return rate
	}
	rate, _ := decimal.NewFromString(defaultValue)
	return rate
}
