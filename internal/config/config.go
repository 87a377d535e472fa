package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config is the environment-driven configuration for the client.
type Config struct {
	Env string

	APIBaseURL     string
	HTTPTimeoutSec int
	RateLimitRPS   int
	RateLimitBurst int

	ReportDir string
}

// Load reads configuration from the environment. Missing optional values
// fall back to defaults; a missing API base URL is fatal since nothing works
// without it.
func Load() *Config {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	baseURL := strings.TrimSpace(os.Getenv("MEALOPS_API_BASE_URL"))
	if baseURL == "" {
		if env == "development" {
			baseURL = "http://localhost:8080"
			log.Printf("MEALOPS_API_BASE_URL not set, using %s", baseURL)
		} else {
			log.Fatal("MEALOPS_API_BASE_URL is required")
		}
	}

	timeoutSec := envInt("MEALOPS_HTTP_TIMEOUT_SECONDS", 30)
	if timeoutSec <= 0 {
		timeoutSec = 30
	}

	rps := envInt("MEALOPS_RATE_LIMIT_RPS", 10)
	if rps <= 0 {
		rps = 10
	}
	burst := envInt("MEALOPS_RATE_LIMIT_BURST", rps)
	if burst <= 0 {
		burst = rps
	}

	reportDir := strings.TrimSpace(os.Getenv("MEALOPS_REPORT_DIR"))
	if reportDir == "" {
		reportDir = "."
	}

	return &Config{
		Env:            env,
		APIBaseURL:     baseURL,
		HTTPTimeoutSec: timeoutSec,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		ReportDir:      reportDir,
	}
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
