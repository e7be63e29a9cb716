package main

import (
	"errors"
	"testing"

	"sanavoz/internal/domain"
)

func TestSubmitBeforeStartupFails(t *testing.T) {
	t.Parallel()

	app := NewApp()
	if err := app.Submit("dolor de cabeza"); err == nil {
		t.Fatalf("submit must fail before startup")
	}
	if err := app.SubmitAudio(3); err == nil {
		t.Fatalf("submit audio must fail before startup")
	}
	if _, err := app.GetHistory(); err == nil {
		t.Fatalf("history must fail before startup")
	}
}

func TestGetStatusBeforeStartup(t *testing.T) {
	t.Parallel()

	app := NewApp()
	status := app.GetStatus()
	if status.State != domain.SessionStateIdle || status.Busy {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestGetStatusAfterBootFailure(t *testing.T) {
	t.Parallel()

	app := NewApp()
	app.bootErr = errors.New("no config")

	status := app.GetStatus()
	if status.State != domain.SessionStateError {
		t.Fatalf("boot failure must surface as error state: %+v", status)
	}
	if status.StatusMessage != "no config" {
		t.Fatalf("unexpected status message: %q", status.StatusMessage)
	}

	if err := app.Submit("x"); !errors.Is(err, app.bootErr) {
		t.Fatalf("boot error must be returned: %v", err)
	}

	info := app.GetRuntimeInfo()
	if info["error"] != "no config" {
		t.Fatalf("runtime info must carry the boot error: %v", info)
	}
}

func TestSessionReasonMessages(t *testing.T) {
	t.Parallel()

	cases := map[domain.SessionStateReason]string{
		domain.SessionReasonReady:               "Sistema listo. ¿Cómo te sientes?",
		domain.SessionReasonRecordingStarted:    "Escuchando...",
		domain.SessionReasonTranscribing:        "Transcribiendo...",
		domain.SessionReasonAnalyzing:           "Analizando gravedad...",
		domain.SessionReasonEmergencyDetected:   "Posible emergencia detectada",
		domain.SessionReasonResultReady:         "Análisis completado",
		domain.SessionReasonModelUnavailable:    "Error: IA no disponible",
		domain.SessionReasonNoSpeechCaptured:    "No se capturó audio",
		domain.SessionReasonTranscriptionFailed: "Error de transcripción",
		domain.SessionReasonInferenceFailed:     "Error al generar análisis",
	}

	for reason, want := range cases {
		if got := sessionReasonMessage(reason); got != want {
			t.Fatalf("sessionReasonMessage(%s) = %q, want %q", reason, got, want)
		}
	}

	if got := sessionReasonMessage("unknown"); got != "" {
		t.Fatalf("unknown reason must map to empty message, got %q", got)
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	cases := map[domain.ErrorCode]string{
		domain.ErrorCodeStartup:          "Fallo al iniciar",
		domain.ErrorCodeBusy:             "Análisis en curso",
		domain.ErrorCodeAudioCapture:     "Problema al capturar audio",
		domain.ErrorCodeTranscription:    "Error de transcripción",
		domain.ErrorCodeInference:        "Error del modelo de IA",
		domain.ErrorCodeModelUnavailable: "IA no disponible",
		domain.ErrorCodeHistory:          "No se pudo guardar el historial",
	}

	for code, want := range cases {
		if got := errorMessage(code, "detalle"); got != want {
			t.Fatalf("errorMessage(%s) = %q, want %q", code, got, want)
		}
	}

	if got := errorMessage("other", "detalle"); got != "detalle" {
		t.Fatalf("unknown code must fall back to detail, got %q", got)
	}
	if got := errorMessage("other", ""); got != "Error desconocido" {
		t.Fatalf("unexpected fallback message: %q", got)
	}
}

func TestEventEmittersIgnoreMissingContext(t *testing.T) {
	t.Parallel()

	// Before startup there is no Wails context; emitting must be a no-op
	// rather than a panic.
	app := NewApp()
	app.SessionStateChanged(domain.SessionStateIdle, domain.SessionReasonReady)
	app.ProvisionalAlert(domain.TriageResult{})
	app.TriageCompleted(domain.TriageResult{})
	app.SessionError(domain.ErrorCodeStartup, "x")
}
