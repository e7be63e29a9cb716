package main

import (
	"context"
	"fmt"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"sanavoz/internal/bootstrap"
	"sanavoz/internal/config"
	"sanavoz/internal/domain"
	"sanavoz/internal/usecase"
)

const (
	eventSession     = "sanavoz:session"
	eventProvisional = "sanavoz:provisional"
	eventResult      = "sanavoz:result"
	eventError       = "sanavoz:error"
)

// App is the Wails application root. It implements the event sink through
// which the backend reaches the presentation layer.
type App struct {
	ctx context.Context

	controller *usecase.SessionController
	cfg        config.Config
	shutdown   func() error
	bootErr    error
}

func NewApp() *App {
	return &App{}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(ctx, a)
	if err != nil {
		a.bootErr = err
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.cfg = services.Config
	a.controller = services.Controller
	a.shutdown = services.History.Close
	a.SessionStateChanged(domain.SessionStateIdle, domain.SessionReasonReady)
}

func (a *App) onShutdown(ctx context.Context) {
	if a.shutdown != nil {
		_ = a.shutdown()
	}
}

// Submit starts triage of typed symptom text. Returns an error while a
// previous request is still in flight; results arrive via events.
func (a *App) Submit(text string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.controller.Submit(a.ctx, text); err != nil {
		if err == usecase.ErrBusy {
			a.SessionError(domain.ErrorCodeBusy, "ya hay un análisis en curso")
		}
		return err
	}
	return nil
}

// SubmitAudio records for the given number of seconds, transcribes and
// triages the spoken text.
func (a *App) SubmitAudio(durationSeconds int) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.controller.SubmitAudio(a.ctx, time.Duration(durationSeconds)*time.Second); err != nil {
		if err == usecase.ErrBusy {
			a.SessionError(domain.ErrorCodeBusy, "ya hay un análisis en curso")
		}
		return err
	}
	return nil
}

// GetStatus returns the current session status.
func (a *App) GetStatus() domain.Status {
	if a.controller == nil {
		if a.bootErr != nil {
			return domain.Status{State: domain.SessionStateError, StatusMessage: a.bootErr.Error()}
		}
		return domain.Status{State: domain.SessionStateIdle}
	}
	return a.controller.Status()
}

// GetHistory returns recent query previews for the drawer, newest first.
func (a *App) GetHistory() ([]domain.HistoryEntry, error) {
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	return a.controller.History()
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	return map[string]string{
		"whisperEndpoint": a.cfg.Whisper.Endpoint,
		"modelEndpoint":   a.cfg.Model.Endpoint,
		"modelName":       a.cfg.Model.Name,
		"language":        a.cfg.Whisper.Language,
		"audioInput":      a.cfg.Audio.InputDevice,
		"historyPath":     a.cfg.History.Path,
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// SessionStateChanged emits session lifecycle updates to the frontend.
func (a *App) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventSession, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": sessionReasonMessage(reason),
	})
}

// ProvisionalAlert emits the pre-emptive emergency warning, ahead of the
// model's response.
func (a *App) ProvisionalAlert(result domain.TriageResult) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventProvisional, result)
}

// TriageCompleted emits the final result for the current request.
func (a *App) TriageCompleted(result domain.TriageResult) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventResult, result)
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonReady:
		return "Sistema listo. ¿Cómo te sientes?"
	case domain.SessionReasonRecordingStarted:
		return "Escuchando..."
	case domain.SessionReasonTranscribing:
		return "Transcribiendo..."
	case domain.SessionReasonAnalyzing:
		return "Analizando gravedad..."
	case domain.SessionReasonEmergencyDetected:
		return "Posible emergencia detectada"
	case domain.SessionReasonResultReady:
		return "Análisis completado"
	case domain.SessionReasonModelUnavailable:
		return "Error: IA no disponible"
	case domain.SessionReasonNoSpeechCaptured:
		return "No se capturó audio"
	case domain.SessionReasonTranscriptionFailed:
		return "Error de transcripción"
	case domain.SessionReasonInferenceFailed:
		return "Error al generar análisis"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Fallo al iniciar"
	case domain.ErrorCodeBusy:
		return "Análisis en curso"
	case domain.ErrorCodeAudioCapture:
		return "Problema al capturar audio"
	case domain.ErrorCodeTranscription:
		return "Error de transcripción"
	case domain.ErrorCodeInference:
		return "Error del modelo de IA"
	case domain.ErrorCodeModelUnavailable:
		return "IA no disponible"
	case domain.ErrorCodeHistory:
		return "No se pudo guardar el historial"
	default:
		if detail == "" {
			return "Error desconocido"
		}
		return detail
	}
}
