package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is loaded from the environment, with an optional .env file.
type Config struct {
	DBDSN       string
	HTTPAddr    string
	Environment string

	// TranscriptMinGrade widens the transcript eligibility policy when set
	// to "A-"; any other value keeps the default A/A+ threshold.
	TranscriptMinGrade string

	// Meeting-provider credentials. When any of them is empty the accept
	// flow degrades to deterministic fallback links.
	MeetTenantID     string
	MeetClientID     string
	MeetClientSecret string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:              os.Getenv("DB_DSN"),
		HTTPAddr:           os.Getenv("HTTP_ADDR"),
		Environment:        os.Getenv("ENV"),
		TranscriptMinGrade: os.Getenv("TRANSCRIPT_MIN_GRADE"),
		MeetTenantID:       os.Getenv("MEET_TENANT_ID"),
		MeetClientID:       os.Getenv("MEET_CLIENT_ID"),
		MeetClientSecret:   os.Getenv("MEET_CLIENT_SECRET"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

// AcceptAMinus reports whether the configured minimum grade admits A- courses.
func (c *Config) AcceptAMinus() bool {
	return c.TranscriptMinGrade == "A-"
}
