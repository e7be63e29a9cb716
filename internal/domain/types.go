package domain

// Severity is the ordered urgency scale for one triage request. Once
// Emergencia is assigned from the keyword path it is never downgraded.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLeve
	SeverityModerado
	SeveritySevero
	SeverityEmergencia
)

func (s Severity) String() string {
	switch s {
	case SeverityLeve:
		return "LEVE"
	case SeverityModerado:
		return "MODERADO"
	case SeveritySevero:
		return "SEVERO"
	case SeverityEmergencia:
		return "EMERGENCIA"
	default:
		return ""
	}
}

// Label is the banner text shown above a result card.
func (s Severity) Label() string {
	if s == SeverityEmergencia {
		return "EMERGENCIA 911"
	}
	return s.String()
}

// ResultStatus is orthogonal to Severity: an error outcome is its own
// terminal state, never to be confused with a low severity tier.
type ResultStatus string

const (
	ResultOK               ResultStatus = "ok"
	ResultProvisional      ResultStatus = "provisional"
	ResultModelUnavailable ResultStatus = "model_unavailable"
	ResultError            ResultStatus = "error"
)

// TriageRequest is one user utterance under analysis. Immutable after
// creation; discarded once its TriageResult is produced.
type TriageRequest struct {
	ID               string `json:"id"`
	RawText          string `json:"rawText"`
	EmergencyFlagged bool   `json:"emergencyFlagged"`
}

// TriageResult is produced exactly once per TriageRequest.
type TriageResult struct {
	Level       Severity     `json:"level"`
	LevelLabel  string       `json:"levelLabel"`
	DisplayText string       `json:"displayText"`
	Status      ResultStatus `json:"status"`
}

// SessionState models the submit lifecycle of the controller.
type SessionState string

const (
	SessionStateIdle       SessionState = "idle"
	SessionStateRecording  SessionState = "recording"
	SessionStateProcessing SessionState = "processing"
	SessionStateError      SessionState = "error"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonReady               SessionStateReason = "ready"
	SessionReasonRecordingStarted    SessionStateReason = "recording_started"
	SessionReasonTranscribing        SessionStateReason = "transcribing"
	SessionReasonAnalyzing           SessionStateReason = "analyzing"
	SessionReasonEmergencyDetected   SessionStateReason = "emergency_detected"
	SessionReasonResultReady         SessionStateReason = "result_ready"
	SessionReasonModelUnavailable    SessionStateReason = "model_unavailable"
	SessionReasonNoSpeechCaptured    SessionStateReason = "no_speech_captured"
	SessionReasonTranscriptionFailed SessionStateReason = "transcription_failed"
	SessionReasonInferenceFailed     SessionStateReason = "inference_failed"
)

// ErrorCode identifies non-fatal backend errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup          ErrorCode = "startup"
	ErrorCodeBusy             ErrorCode = "busy"
	ErrorCodeAudioCapture     ErrorCode = "audio_capture"
	ErrorCodeTranscription    ErrorCode = "transcription"
	ErrorCodeInference        ErrorCode = "inference"
	ErrorCodeModelUnavailable ErrorCode = "model_unavailable"
	ErrorCodeHistory          ErrorCode = "history"
)

// Status summarizes the current controller status for the UI.
type Status struct {
	State         SessionState `json:"state"`
	Busy          bool         `json:"busy"`
	StatusMessage string       `json:"statusMessage,omitempty"`
}

// HistoryEntry is a truncated preview of a past result, most recent first.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	Preview   string `json:"preview"`
	Level     string `json:"level"`
	CreatedAt string `json:"createdAt"`
}
