package triage

import (
	"strings"

	"github.com/google/uuid"

	"sanavoz/internal/domain"
)

const (
	callToAction    = "LLAMA AL 911 INMEDIATAMENTE"
	generatingNote  = "(Generando detalles clínicos...)"
	vitalRiskNotice = "DETECTADO POSIBLE RIESGO VITAL"
	unavailableNote = "Error: IA no disponible"
)

// Tier tokens scanned in the model's free-text response, highest first.
// The first tier with any token present wins; position does not matter.
var (
	severoTokens   = []string{"SEVERO", "ROJO", "ALTO"}
	moderadoTokens = []string{"MODERADO", "AMARILLO", "MEDIO"}
	leveTokens     = []string{"LEVE", "VERDE", "BAJO"}
)

// colorTags are structural markers stripped from responses before display.
var colorTags = []string{"(ROJO)", "(AMARILLO)", "(VERDE)"}

// Screen creates a request from raw user text and runs the synchronous
// keyword check. This is the only entry point that flags an emergency.
func Screen(rawText string) domain.TriageRequest {
	return domain.TriageRequest{
		ID:               uuid.NewString(),
		RawText:          rawText,
		EmergencyFlagged: IsEmergency(rawText),
	}
}

// Provisional is the pre-emptive alert surfaced before model inference
// completes when the keyword check flagged an emergency. The user must not
// wait on model latency to see a life-critical warning.
func Provisional(req domain.TriageRequest) domain.TriageResult {
	return domain.TriageResult{
		Level:       domain.SeverityEmergencia,
		LevelLabel:  domain.SeverityEmergencia.Label(),
		DisplayText: callToAction + "\n\n" + generatingNote,
		Status:      domain.ResultProvisional,
	}
}

// Resolve merges the keyword verdict with the model's free-text response.
// A keyword-flagged emergency is sticky: model text is appended only as
// supplementary detail and never downgrades the level.
func Resolve(req domain.TriageRequest, modelText string) domain.TriageResult {
	level := ParseTier(modelText)
	if req.EmergencyFlagged {
		level = domain.SeverityEmergencia
	}

	var display string
	if req.EmergencyFlagged {
		display = callToAction + "\n\n" +
			"SÍNTOMAS: " + req.RawText + "\n\n" +
			vitalRiskNotice + "\n\n" +
			"Análisis IA:\n" + sanitizeResponse(modelText)
	} else {
		display = strings.TrimSpace("SÍNTOMAS: " + req.RawText + "\n\n" + sanitizeResponse(modelText))
	}

	return domain.TriageResult{
		Level:       level,
		LevelLabel:  level.Label(),
		DisplayText: display,
		Status:      domain.ResultOK,
	}
}

// ResolveUnavailable handles the branch where no model instance is loaded.
// No severity is assigned beyond whatever the keyword check produced.
func ResolveUnavailable(req domain.TriageRequest) domain.TriageResult {
	if req.EmergencyFlagged {
		return domain.TriageResult{
			Level:       domain.SeverityEmergencia,
			LevelLabel:  domain.SeverityEmergencia.Label(),
			DisplayText: callToAction + "\n\nSÍNTOMAS: " + req.RawText + "\n\n" + unavailableNote,
			Status:      domain.ResultModelUnavailable,
		}
	}
	return domain.TriageResult{
		Level:       domain.SeverityNone,
		LevelLabel:  domain.SeverityNone.Label(),
		DisplayText: unavailableNote,
		Status:      domain.ResultModelUnavailable,
	}
}

// ResolveFailure handles a failed model invocation. The request resolves
// with an error outcome instead of crashing; a keyword-flagged emergency
// keeps its alert, only the trailing detail reflects the failure.
func ResolveFailure(req domain.TriageRequest, detail string) domain.TriageResult {
	if req.EmergencyFlagged {
		return domain.TriageResult{
			Level:       domain.SeverityEmergencia,
			LevelLabel:  domain.SeverityEmergencia.Label(),
			DisplayText: callToAction + "\n\nSÍNTOMAS: " + req.RawText + "\n\nError: " + detail,
			Status:      domain.ResultError,
		}
	}
	return domain.TriageResult{
		Level:       domain.SeverityNone,
		LevelLabel:  domain.SeverityNone.Label(),
		DisplayText: "Error: " + detail,
		Status:      domain.ResultError,
	}
}

// ParseTier scans a model response for severity tokens. Higher tiers win;
// responses with no recognized token default to the mild tier.
func ParseTier(modelText string) domain.Severity {
	normalized := strings.ToUpper(modelText)
	if containsAny(normalized, severoTokens) {
		return domain.SeveritySevero
	}
	if containsAny(normalized, moderadoTokens) {
		return domain.SeverityModerado
	}
	return domain.SeverityLeve
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// sanitizeResponse strips structural markers used purely for parsing: the
// answer marker the model was prompted with and parenthetical color tags.
func sanitizeResponse(modelText string) string {
	cleaned := strings.ReplaceAll(modelText, answerMarker, "")
	for _, tag := range colorTags {
		cleaned = strings.ReplaceAll(cleaned, tag, "")
		cleaned = strings.ReplaceAll(cleaned, strings.ToLower(tag), "")
	}
	return strings.TrimSpace(cleaned)
}
