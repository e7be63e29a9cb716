package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sanavoz/internal/audio"
	"sanavoz/internal/config"
	"sanavoz/internal/history"
	"sanavoz/internal/ports"
	"sanavoz/internal/providers/llama"
	"sanavoz/internal/providers/whisper"
	"sanavoz/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.SessionController
	Config     config.Config
	History    ports.HistoryStore
}

// Build wires all backend dependencies for the current runtime. The model
// slot starts loading in the background; until (and unless) the probe
// succeeds, classification runs on the keyword path alone.
func Build(ctx context.Context, events ports.EventSink) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}
	config.SetupLogging(cfg.Logging)

	if dir := filepath.Dir(cfg.History.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Services{}, fmt.Errorf("creating history directory: %w", err)
		}
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return Services{}, err
	}

	slot := llama.NewSlot()
	slot.LoadAsync(ctx, llama.NewClient(llama.Config{
		Endpoint:    cfg.Model.Endpoint,
		Model:       cfg.Model.Name,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
	}), cfg.Model.ProbeTimeout)

	controller := usecase.NewSessionController(
		audio.NewFFMPEGCapture(cfg.Audio.FFMPEGCommand),
		whisper.NewClient(whisper.Config{
			Endpoint: cfg.Whisper.Endpoint,
			Model:    cfg.Whisper.Model,
			Language: cfg.Whisper.Language,
		}),
		slot,
		store,
		events,
		usecase.Config{
			Audio: ports.AudioConfig{
				SampleRate:  cfg.Audio.SampleRate,
				Channels:    cfg.Audio.Channels,
				InputFormat: cfg.Audio.InputFormat,
				InputDevice: cfg.Audio.InputDevice,
			},
			RecordDuration:    time.Duration(cfg.Audio.RecordSeconds) * time.Second,
			TranscribeTimeout: cfg.Session.TranscribeTimeout,
			GenerateTimeout:   cfg.Session.GenerateTimeout,
			HistoryLimit:      cfg.History.Limit,
			PreviewLength:     cfg.History.PreviewLength,
		},
	)

	return Services{Controller: controller, Config: cfg, History: store}, nil
}
