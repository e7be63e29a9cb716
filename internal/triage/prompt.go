package triage

import "fmt"

// answerMarker is the literal the model is prompted to start its answer
// with. It is stripped from responses before display.
const answerMarker = "Respuesta:"

// promptTemplate follows the Gemma chat turn format expected by the local
// model. The worked examples pin the output shape the classifier parses.
const promptTemplate = `<start_of_turn>user
Actúa como un asistente de triaje médico de emergencia. Tu objetivo es clasificar el síntoma rápidamente.

REGLAS:
1. Sé breve y directo.
2. Prioriza la seguridad.
3. Usa emojis para visualización rápida.
4. Analiza EXCLUSIVAMENTE lo que el paciente escribe.
5. NO inventes síntomas.
6. NO copies los ejemplos.

Debes responder ESTRICTAMENTE con este formato:
NIVEL: [LEVE / MODERADO / EMERGENCIA]
SOSPECHA: [1 o 2 palabras clave]
ACCIÓN: [La recomendación más importante]

---
EJEMPLO 1:
Paciente: "Me duele el pecho y el brazo izquierdo, sudo frío."
Respuesta:
NIVEL: EMERGENCIA
SOSPECHA: Infarto Cardíaco
ACCIÓN: Llamar a emergencias YA. No moverse.

EJEMPLO 2:
Paciente: "Me torcí el tobillo, duele un poco pero puedo caminar."
Respuesta:
NIVEL: LEVE
SOSPECHA: Esguince leve
ACCIÓN: Hielo y reposo. Si empeora, ir al médico.

EJEMPLO 3:
Paciente: "Tengo media cara paralizada y no puedo hablar bien de la nada."
Respuesta:
NIVEL: EMERGENCIA
SOSPECHA: ACV / Ictus
ACCIÓN: Correr a urgencias inmediatamente (Código Ictus).

EJEMPLO 4:
Paciente: "Tengo flemas en la garganta y fiebre de 38."
Respuesta:
NIVEL: MODERADO
SOSPECHA: Amigdalitis bacteriana
ACCIÓN: Ir al médico para valoración de antibióticos.

EJEMPLO 5:
Paciente: "Tengo irritada la piel por tocar una planta."
Respuesta:
NIVEL: LEVE
SOSPECHA: Dermatitis de contacto
ACCIÓN: Lavar con agua y jabón. Crema hidratante.
---

Paciente: "%s"<end_of_turn>
<start_of_turn>model
` + answerMarker

// BuildPrompt embeds the user's text verbatim into the instruction
// template. Pure function: identical input yields identical output.
// The text is inserted as-is, without escaping.
func BuildPrompt(userText string) string {
	return fmt.Sprintf(promptTemplate, userText)
}
