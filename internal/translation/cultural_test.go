package translation

import (
	"slices"
	"testing"
)

func TestDetectCulturalAdaptationsDroppedMarkers(t *testing.T) {
	original := "Hello, Mr. Smith! It's 3:00 PM."
	translated := "¡Hola, señor Smith! Son las 15:00."

	adaptations := detectCulturalAdaptations(original, translated)

	if !slices.Contains(adaptations, "Title adaptation") {
		t.Errorf("expected Title adaptation in %v", adaptations)
	}
	if !slices.Contains(adaptations, "Time format adaptation") {
		t.Errorf("expected Time format adaptation in %v", adaptations)
	}
}

func TestDetectCulturalAdaptationsPreservedMarkers(t *testing.T) {
	original := "Hello, Mr. Smith! It's 3:00 PM."
	translated := "Bonjour, Mr. Smith! Il est 3:00 PM."

	if adaptations := detectCulturalAdaptations(original, translated); len(adaptations) != 0 {
		t.Fatalf("expected no adaptations, got %v", adaptations)
	}
}

func TestDetectCulturalAdaptationsCurrencyAndDate(t *testing.T) {
	original := "It costs $50, due 12/31/2024."
	translated := "Cuesta 50 euros, vence el 31 de diciembre de 2024."

	adaptations := detectCulturalAdaptations(original, translated)
	if !slices.Contains(adaptations, "Currency adaptation") {
		t.Errorf("expected Currency adaptation in %v", adaptations)
	}
	if !slices.Contains(adaptations, "Date format adaptation") {
		t.Errorf("expected Date format adaptation in %v", adaptations)
	}
}

func TestDetectCulturalAdaptationsIgnoresMarkersAbsentFromSource(t *testing.T) {
	adaptations := detectCulturalAdaptations("Just plain text", "Texto plano con $5")
	if len(adaptations) != 0 {
		t.Fatalf("markers only in the translation should not be flagged, got %v", adaptations)
	}
}
