package triage

import "strings"

// emergencyTriggers is the fixed vocabulary that deterministically forces
// the highest urgency tier. Terms are matched as lowercase substrings with
// no diacritic folding: accented and unaccented forms are distinct, so the
// list carries exactly the forms it needs. Covers cardiac, respiratory,
// neurological, traumatic/hemorrhagic and self-harm presentations.
var emergencyTriggers = []string{
	"infarto", "paro", "corazón", "arritmia",
	"asfixia", "ahogo", "no respira", "azul",
	"desmayo", "inconsciente", "convulsion", "derrame", "acv", "despierta",
	"hemorragia", "sangrado", "sangre",
	"baleado", "disparo", "puñalada", "cuchillo", "quemadura",
	"suicidio", "matarme", "veneno",
}

// IsEmergency reports whether the raw user text contains any emergency
// trigger term. It is synchronous and cheap: its verdict gates an immediate
// alert before any model inference starts.
func IsEmergency(text string) bool {
	lowered := strings.ToLower(text)
	for _, trigger := range emergencyTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}
