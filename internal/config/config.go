package config

import (
	"os"
	"strconv"
	"time"
)

// MissingKeyMessage is shown to the user whenever an action needs the
// OpenAI credential and none is configured.
const MissingKeyMessage = "Missing OPENAI_API_KEY."

type Config struct {
	Port              string
	OpenAIAPIKey      string
	TranscribeModel   string
	AdviceModel       string
	AdviceTemperature float32
	SessionTTL        time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:              os.Getenv("PORT"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		TranscribeModel:   os.Getenv("TRANSCRIBE_MODEL"),
		AdviceModel:       os.Getenv("ADVICE_MODEL"),
		AdviceTemperature: 0.7,
		SessionTTL:        30 * time.Minute,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = "whisper-1"
	}
	if cfg.AdviceModel == "" {
		cfg.AdviceModel = "gpt-4"
	}
	if v := os.Getenv("ADVICE_TEMPERATURE"); v != "" {
		if t, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.AdviceTemperature = float32(t)
		}
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = d
		}
	}

	return cfg
}

// Configured reports whether the OpenAI credential is present. Its absence
// is non-fatal: the app still serves the page, but gateway calls are blocked.
func (c *Config) Configured() bool {
	return c.OpenAIAPIKey != ""
}
