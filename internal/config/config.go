// Package config handles loading and validating the sanavoz configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the application.
type Config struct {
	Whisper WhisperConfig `mapstructure:"whisper"`
	Model   ModelConfig   `mapstructure:"model"`
	Audio   AudioConfig   `mapstructure:"audio"`
	History HistoryConfig `mapstructure:"history"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WhisperConfig holds the local transcription endpoint settings.
type WhisperConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
	Language string `mapstructure:"language"`
}

// ModelConfig holds the local language-model endpoint settings.
type ModelConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Name         string        `mapstructure:"name"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// AudioConfig holds microphone capture settings.
type AudioConfig struct {
	FFMPEGCommand string `mapstructure:"ffmpeg_command"`
	InputFormat   string `mapstructure:"input_format"`
	InputDevice   string `mapstructure:"input_device"`
	SampleRate    int    `mapstructure:"sample_rate"`
	Channels      int    `mapstructure:"channels"`
	RecordSeconds int    `mapstructure:"record_seconds"`
}

// HistoryConfig holds query-history persistence settings.
type HistoryConfig struct {
	Path          string `mapstructure:"path"`
	Limit         int    `mapstructure:"limit"`
	PreviewLength int    `mapstructure:"preview_length"`
}

// SessionConfig holds pipeline timeout settings. A hung model call must
// not hang the session: expiry resolves as an inference failure.
type SessionConfig struct {
	TranscribeTimeout time.Duration `mapstructure:"transcribe_timeout"`
	GenerateTimeout   time.Duration `mapstructure:"generate_timeout"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads configuration from file, environment variables and defaults.
// Search order: ./sanavoz.yaml, ~/.config/sanavoz/sanavoz.yaml. Env vars
// use the SANAVOZ prefix: SANAVOZ_MODEL_ENDPOINT, SANAVOZ_LOGGING_LEVEL...
func Load() (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()

	v.SetDefault("whisper.endpoint", "http://localhost:8000/v1/audio/transcriptions")
	v.SetDefault("whisper.model", "ggml-tiny")
	v.SetDefault("whisper.language", "es")
	v.SetDefault("model.endpoint", "http://localhost:8080/completion")
	v.SetDefault("model.name", "gemma-2b-it")
	v.SetDefault("model.max_tokens", 1500)
	v.SetDefault("model.temperature", 0.2)
	v.SetDefault("model.probe_timeout", "5s")
	v.SetDefault("audio.ffmpeg_command", "ffmpeg")
	v.SetDefault("audio.input_format", "pulse")
	v.SetDefault("audio.input_device", "default")
	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.channels", 1)
	v.SetDefault("audio.record_seconds", 3)
	v.SetDefault("history.path", filepath.Join(home, ".local", "share", "sanavoz", "history.db"))
	v.SetDefault("history.limit", 50)
	v.SetDefault("history.preview_length", 30)
	v.SetDefault("session.transcribe_timeout", "30s")
	v.SetDefault("session.generate_timeout", "60s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigName("sanavoz")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "sanavoz"))
	}

	v.SetEnvPrefix("SANAVOZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Audio.RecordSeconds <= 0 {
		cfg.Audio.RecordSeconds = 3
	}

	return cfg, nil
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
