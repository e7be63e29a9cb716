package ports

import (
	"context"
	"time"

	"sanavoz/internal/domain"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	InputFormat string
	InputDevice string
}

// AudioCapture records a fixed-duration clip and returns normalized mono
// samples in [-1.0, 1.0]. An empty slice means nothing was captured.
type AudioCapture interface {
	Record(ctx context.Context, cfg AudioConfig, duration time.Duration) ([]float32, error)
}

// Transcriber converts captured samples into text. Empty input yields
// empty text without error.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)
}

// LanguageModel is a loaded local model instance.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelSource reports whether a language model instance is available.
// Loading is asynchronous and may fail silently; the classifier treats
// absence as its own branch, not as an error.
type ModelSource interface {
	Model() (LanguageModel, bool)
}

// HistoryStore keeps truncated previews of past results, most recent first.
type HistoryStore interface {
	Append(entry domain.HistoryEntry) error
	Recent(limit int) ([]domain.HistoryEntry, error)
	Close() error
}

// EventSink delivers backend state and results to the presentation layer.
// It is the single point through which background workers touch the UI.
type EventSink interface {
	SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason)
	ProvisionalAlert(result domain.TriageResult)
	TriageCompleted(result domain.TriageResult)
	SessionError(code domain.ErrorCode, detail string)
}
