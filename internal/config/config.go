package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"marketscraper/internal/apperror"
)

type Config struct {
	BaseURL     string
	Symbols     []string
	OutputPath  string
	CSVPath     string
	DBPath      string
	Workers     int
	HTTPTimeout time.Duration
}

func Load() Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		BaseURL:     getEnv("BASE_URL", "https://databoks.katadata.co.id/marketdata"),
		Symbols:     splitList(getEnv("EMITEN_LIST", "bbca,indf")),
		OutputPath:  getEnv("OUTPUT_PATH", "market_data.json"),
		CSVPath:     getEnv("CSV_PATH", "market_data.csv"),
		DBPath:      getEnv("DB_PATH", "market_data.db"),
		Workers:     getEnvInt("WORKERS", 1),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

// Validate rejects configurations that cannot produce a meaningful run.
// Called before any symbol is processed; a failure here is fatal.
func (c Config) Validate() error {
	if len(c.Symbols) == 0 {
		return apperror.New(apperror.Config, "no symbols configured (set EMITEN_LIST)")
	}
	if c.BaseURL == "" {
		return apperror.New(apperror.Config, "base URL cannot be empty")
	}
	if c.OutputPath == "" {
		return apperror.New(apperror.Config, "output path cannot be empty")
	}
	if c.Workers < 1 {
		return apperror.New(apperror.Config, "workers must be at least 1")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
