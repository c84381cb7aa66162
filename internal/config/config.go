package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the assistant.
type Config struct {
	BindAddr         string
	MetricsNamespace string
	AllowAnyOrigin   bool

	BrainProvider      string
	GeminiAPIKey       string
	GeminiBaseURL      string
	BrainModel         string
	BrainContextWindow int

	DatabaseURL    string
	ScheduleDBPath string

	ListenStartTimeout time.Duration
	ListenPhraseLimit  time.Duration
	ListenCommand      string
	DeviceListCommand  string
	SpeakCommand       string

	SpeechStopTimeout time.Duration
	ShutdownTimeout   time.Duration

	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "iris"),
		AllowAnyOrigin:   false,
		BrainProvider:    envOrDefault("BRAIN_PROVIDER", "gemini"),
		GeminiAPIKey:     trimmedEnv("GEMINI_API_KEY"),
		GeminiBaseURL:    envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		BrainModel:       envOrDefault("BRAIN_MODEL", "gemini-2.5-flash"),
		// 0 means the whole conversation is sent on every turn.
		BrainContextWindow: 0,
		DatabaseURL:        trimmedEnv("DATABASE_URL"),
		ScheduleDBPath:     envOrDefault("SCHEDULE_DB_PATH", "schedule.db"),
		ListenStartTimeout: 5 * time.Second,
		ListenPhraseLimit:  6 * time.Second,
		ListenCommand:      trimmedEnv("LISTEN_COMMAND"),
		DeviceListCommand:  envOrDefault("DEVICE_LIST_COMMAND", "arecord -L"),
		SpeakCommand:       trimmedEnv("SPEAK_COMMAND"),
		SpeechStopTimeout:  2 * time.Second,
		ShutdownTimeout:    15 * time.Second,
		TelegramBotToken:   trimmedEnv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     0,
	}

	var err error
	cfg.BrainContextWindow, err = intFromEnv("BRAIN_CONTEXT_WINDOW", cfg.BrainContextWindow)
	if err != nil {
		return Config{}, err
	}
	cfg.ListenStartTimeout, err = durationFromEnv("LISTEN_START_TIMEOUT", cfg.ListenStartTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ListenPhraseLimit, err = durationFromEnv("LISTEN_PHRASE_LIMIT", cfg.ListenPhraseLimit)
	if err != nil {
		return Config{}, err
	}
	cfg.SpeechStopTimeout, err = durationFromEnv("SPEECH_STOP_TIMEOUT", cfg.SpeechStopTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.TelegramChatID, err = int64FromEnv("TELEGRAM_CHAT_ID", cfg.TelegramChatID)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(strings.TrimSpace(cfg.BrainProvider)) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return Config{}, fmt.Errorf("GEMINI_API_KEY is required when BRAIN_PROVIDER=gemini")
		}
	case "mock":
	default:
		return Config{}, fmt.Errorf("invalid BRAIN_PROVIDER: %q (expected gemini|mock)", cfg.BrainProvider)
	}

	if cfg.BrainContextWindow < 0 {
		return Config{}, fmt.Errorf("BRAIN_CONTEXT_WINDOW must be >= 0")
	}
	if cfg.ListenStartTimeout <= 0 {
		return Config{}, fmt.Errorf("LISTEN_START_TIMEOUT must be positive")
	}
	if cfg.ListenPhraseLimit <= 0 {
		return Config{}, fmt.Errorf("LISTEN_PHRASE_LIMIT must be positive")
	}
	if cfg.SpeechStopTimeout <= 0 {
		return Config{}, fmt.Errorf("SPEECH_STOP_TIMEOUT must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func int64FromEnv(key string, fallback int64) (int64, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
