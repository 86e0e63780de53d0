package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// AI rewrite service
	AIServiceURL string

	// Editor behavior
	AutosaveDebounce time.Duration
	TemplateDir      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	tplDir := os.Getenv("TEMPLATE_DIR")
	if tplDir == "" {
		tplDir = "templates"
	}

	debounce := 800 * time.Millisecond
	if raw := os.Getenv("AUTOSAVE_DEBOUNCE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			debounce = time.Duration(ms) * time.Millisecond
		}
	}

	return &Config{
		Port:             port,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AIServiceURL:     os.Getenv("AI_SERVICE_URL"),
		AutosaveDebounce: debounce,
		TemplateDir:      tplDir,
	}
}
