package triage

import "testing"

func TestIsEmergencyDetectsTriggerTerms(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"No puedo respirar, me ahogo":           true,
		"Creo que es un INFARTO":                true,
		"mi papá no respira bien":               true,
		"se cortó y hay mucha sangre":           true,
		"tiene convulsiones desde hace un rato": true,
		"me quiero matarme":                     true,
		"Tengo mucho dolor de cabeza":           false,
		"me duele la garganta y tengo fiebre":   false,
		"":                                      false,
		"tengo el tobillo hinchado por caminar": false,
		"estuve vomitando toda la noche":        false,
	}

	for text, want := range cases {
		text := text
		want := want
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			if got := IsEmergency(text); got != want {
				t.Fatalf("IsEmergency(%q) = %v, want %v", text, got, want)
			}
		})
	}
}

func TestIsEmergencyIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	if !IsEmergency("PARO CARDIACO") {
		t.Fatalf("expected uppercase trigger to match")
	}
	if !IsEmergency("Hemorragia interna") {
		t.Fatalf("expected mixed-case trigger to match")
	}
}

func TestIsEmergencyMatchesSubstringsAnywhere(t *testing.T) {
	t.Parallel()

	if !IsEmergency("ayer sufrí un desmayo en el trabajo") {
		t.Fatalf("expected mid-sentence trigger to match")
	}
	if !IsEmergency("veneno") {
		t.Fatalf("expected bare trigger term to match")
	}
}

func TestIsEmergencyDoesNotFoldDiacritics(t *testing.T) {
	t.Parallel()

	// The vocabulary carries "corazón" with accent only; the unaccented
	// form is deliberately not equivalent.
	if !IsEmergency("me duele el corazón") {
		t.Fatalf("expected accented form to match")
	}
	if IsEmergency("me duele el corazon") {
		t.Fatalf("unaccented form must not match")
	}
}
