package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"sanavoz/internal/domain"
	"sanavoz/internal/ports"
	"sanavoz/internal/triage"
)

var (
	// ErrBusy is returned when a submission arrives while another triage
	// request is still in flight. Overlapping requests are rejected, not
	// queued, so writes to the observable state never interleave.
	ErrBusy = errors.New("a triage request is already in flight")

	ErrEmptyInput = errors.New("empty input text")
)

// Config controls capture and pipeline behavior.
type Config struct {
	Audio             ports.AudioConfig
	RecordDuration    time.Duration
	TranscribeTimeout time.Duration
	GenerateTimeout   time.Duration
	HistoryLimit      int
	PreviewLength     int
}

// SessionController sequences capture, transcription, classification and
// display updates. At most one request is in flight per session; all
// blocking work runs on a background goroutine and reaches the UI only
// through the event sink.
type SessionController struct {
	audio   ports.AudioCapture
	stt     ports.Transcriber
	model   ports.ModelSource
	history ports.HistoryStore
	events  ports.EventSink
	cfg     Config

	mu      sync.Mutex
	busy    bool
	state   domain.SessionState
	message string
}

func NewSessionController(
	audio ports.AudioCapture,
	stt ports.Transcriber,
	model ports.ModelSource,
	history ports.HistoryStore,
	events ports.EventSink,
	cfg Config,
) *SessionController {
	if cfg.RecordDuration <= 0 {
		cfg.RecordDuration = 3 * time.Second
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 30
	}
	return &SessionController{
		audio:   audio,
		stt:     stt,
		model:   model,
		history: history,
		events:  events,
		cfg:     cfg,
		state:   domain.SessionStateIdle,
	}
}

// Submit starts classification of typed text. Fire-and-forget: the result
// is delivered through the event sink.
func (c *SessionController) Submit(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyInput
	}
	if !c.begin(domain.SessionStateProcessing, domain.SessionReasonAnalyzing, "Analizando gravedad...") {
		return ErrBusy
	}

	go func() {
		c.classify(ctx, trimmed)
	}()
	return nil
}

// SubmitAudio records a fixed-duration clip, transcribes it and feeds the
// text through the same classification pipeline as Submit.
func (c *SessionController) SubmitAudio(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		duration = c.cfg.RecordDuration
	}
	if !c.begin(domain.SessionStateRecording, domain.SessionReasonRecordingStarted, "Escuchando...") {
		return ErrBusy
	}

	go func() {
		samples, err := c.audio.Record(ctx, c.cfg.Audio, duration)
		if err != nil {
			c.events.SessionError(domain.ErrorCodeAudioCapture, err.Error())
			c.finish(domain.SessionStateIdle, domain.SessionReasonNoSpeechCaptured, "")
			return
		}
		if len(samples) == 0 {
			c.finish(domain.SessionStateIdle, domain.SessionReasonNoSpeechCaptured, "")
			return
		}

		c.setState(domain.SessionStateProcessing, domain.SessionReasonTranscribing, "Transcribiendo...")

		text, err := c.transcribe(ctx, samples)
		if err != nil {
			c.events.SessionError(domain.ErrorCodeTranscription, err.Error())
			c.finish(domain.SessionStateIdle, domain.SessionReasonTranscriptionFailed, "")
			return
		}
		if strings.TrimSpace(text) == "" {
			c.finish(domain.SessionStateIdle, domain.SessionReasonNoSpeechCaptured, "")
			return
		}

		c.classify(ctx, strings.TrimSpace(text))
	}()
	return nil
}

// Status returns the current session status.
func (c *SessionController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Status{State: c.state, Busy: c.busy, StatusMessage: c.message}
}

// History returns recent result previews, most recent first.
func (c *SessionController) History() ([]domain.HistoryEntry, error) {
	return c.history.Recent(c.cfg.HistoryLimit)
}

// classify runs the keyword check, the optional model inference and the
// final merge. Within one request the keyword verdict is always published
// before the model result.
func (c *SessionController) classify(ctx context.Context, text string) {
	req := triage.Screen(text)
	log := slog.With("request_id", req.ID)
	log.Debug("keyword screening complete", "emergency", req.EmergencyFlagged)

	if req.EmergencyFlagged {
		c.events.ProvisionalAlert(triage.Provisional(req))
		c.setState(domain.SessionStateProcessing, domain.SessionReasonEmergencyDetected, "Generando detalles clínicos...")
	}

	model, ok := c.model.Model()
	if !ok {
		log.Warn("no language model loaded, resolving without inference")
		result := triage.ResolveUnavailable(req)
		c.events.SessionError(domain.ErrorCodeModelUnavailable, "IA no disponible")
		c.events.TriageCompleted(result)
		c.finish(domain.SessionStateIdle, domain.SessionReasonModelUnavailable, "")
		return
	}

	response, err := c.generate(ctx, model, triage.BuildPrompt(req.RawText))
	if err != nil {
		log.Error("model inference failed", "error", err)
		result := triage.ResolveFailure(req, err.Error())
		c.events.SessionError(domain.ErrorCodeInference, err.Error())
		c.events.TriageCompleted(result)
		c.finish(domain.SessionStateIdle, domain.SessionReasonInferenceFailed, "")
		return
	}

	result := triage.Resolve(req, response)
	log.Info("triage resolved", "level", result.Level.String())
	c.events.TriageCompleted(result)
	c.recordHistory(result)
	c.finish(domain.SessionStateIdle, domain.SessionReasonResultReady, "")
}

func (c *SessionController) transcribe(ctx context.Context, samples []float32) (string, error) {
	if c.cfg.TranscribeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.TranscribeTimeout)
		defer cancel()
	}
	return c.stt.Transcribe(ctx, samples, c.cfg.Audio.SampleRate)
}

func (c *SessionController) generate(ctx context.Context, model ports.LanguageModel, prompt string) (string, error) {
	if c.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.GenerateTimeout)
		defer cancel()
	}
	return model.Generate(ctx, prompt)
}

func (c *SessionController) recordHistory(result domain.TriageResult) {
	entry := domain.HistoryEntry{
		Preview: previewOf(result.DisplayText, c.cfg.PreviewLength),
		Level:   result.Level.String(),
	}
	if err := c.history.Append(entry); err != nil {
		c.events.SessionError(domain.ErrorCodeHistory, err.Error())
	}
}

// begin claims the single in-flight slot. Returns false when busy.
func (c *SessionController) begin(state domain.SessionState, reason domain.SessionStateReason, message string) bool {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	c.busy = true
	c.state = state
	c.message = message
	c.mu.Unlock()

	c.events.SessionStateChanged(state, reason)
	return true
}

func (c *SessionController) setState(state domain.SessionState, reason domain.SessionStateReason, message string) {
	c.mu.Lock()
	c.state = state
	c.message = message
	c.mu.Unlock()

	c.events.SessionStateChanged(state, reason)
}

// finish releases the in-flight slot. Every pipeline path ends here, so a
// failed classification never leaves the processing indicator on.
func (c *SessionController) finish(state domain.SessionState, reason domain.SessionStateReason, message string) {
	c.mu.Lock()
	c.busy = false
	c.state = state
	c.message = message
	c.mu.Unlock()

	c.events.SessionStateChanged(state, reason)
}

// previewOf collapses newlines and truncates to the first n runes.
func previewOf(text string, n int) string {
	collapsed := strings.ReplaceAll(text, "\n", " ")
	runes := []rune(collapsed)
	if len(runes) <= n {
		return collapsed
	}
	return string(runes[:n]) + "..."
}
