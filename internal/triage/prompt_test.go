package triage

import (
	"strings"
	"testing"
)

func TestBuildPromptEmbedsUserTextVerbatim(t *testing.T) {
	t.Parallel()

	text := `me duele el pecho "fuerte" y sudo frío`
	prompt := BuildPrompt(text)

	if !strings.Contains(prompt, `Paciente: "`+text+`"`) {
		t.Fatalf("prompt does not embed user text verbatim:\n%s", prompt)
	}
}

func TestBuildPromptIsIdempotent(t *testing.T) {
	t.Parallel()

	if BuildPrompt("dolor de cabeza") != BuildPrompt("dolor de cabeza") {
		t.Fatalf("identical input must produce identical prompt")
	}
}

func TestBuildPromptCarriesInstructionsAndExamples(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("x")

	for _, fragment := range []string{
		"asistente de triaje médico",
		"NO inventes síntomas",
		"NO copies los ejemplos",
		"NIVEL: [LEVE / MODERADO / EMERGENCIA]",
		"EJEMPLO 1:",
		"EJEMPLO 5:",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q", fragment)
		}
	}

	if !strings.HasSuffix(prompt, answerMarker) {
		t.Fatalf("prompt must end with the answer marker, got tail %q", prompt[len(prompt)-24:])
	}
}
