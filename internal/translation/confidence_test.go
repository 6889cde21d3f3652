package translation

import (
	"strings"
	"testing"
)

// The score is a heuristic sanity signal built from surface features, not a
// linguistic quality metric; these tests pin the arithmetic, nothing more.
func TestConfidenceScoreBalancedTranslation(t *testing.T) {
	got := confidenceScore("Hello world", "Hola mundo")
	// base 0.85 + ratio bonus 0.05 + numeral match 0.03 + line fit 0.05
	want := 0.98
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("confidenceScore = %v, want %v", got, want)
	}
}

func TestConfidenceScoreExtremeRatioPenalty(t *testing.T) {
	got := confidenceScore("Hello, how are you doing today my friend", "Hi")
	// base 0.85 - ratio penalty 0.15 + numeral match 0.03 + line fit 0.05
	want := 0.78
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("confidenceScore = %v, want %v", got, want)
	}
}

func TestConfidenceScoreNumeralMismatchPenalty(t *testing.T) {
	got := confidenceScore("I have 3 cats", "Tengo gatos")
	// base 0.85 + ratio bonus 0.05 - numeral mismatch 0.08 + line fit 0.05
	want := 0.87
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("confidenceScore = %v, want %v", got, want)
	}
}

func TestConfidenceScoreLongLineLosesFitBonus(t *testing.T) {
	original := strings.Repeat("a", 60)
	translated := strings.Repeat("b", 60)
	got := confidenceScore(original, translated)
	// base 0.85 + ratio bonus 0.05 + numeral match 0.03, no line-fit bonus
	want := 0.93
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("confidenceScore = %v, want %v", got, want)
	}
}

func TestConfidenceScoreAlwaysWithinBounds(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"", "some translation of nothing"},
		{"short", strings.Repeat("x", 500)},
		{strings.Repeat("1 2 3 ", 50), "none"},
		{"Hello 42", "Hola 42"},
	}
	for _, pair := range cases {
		got := confidenceScore(pair[0], pair[1])
		if got < MinConfidence || got > MaxConfidence {
			t.Errorf("confidenceScore(%q, %q) = %v, outside [%v, %v]",
				pair[0], pair[1], got, MinConfidence, MaxConfidence)
		}
	}
}

func TestClampConfidence(t *testing.T) {
	if got := clampConfidence(-0.5); got != MinConfidence {
		t.Fatalf("clampConfidence(-0.5) = %v, want %v", got, MinConfidence)
	}
	if got := clampConfidence(1.5); got != MaxConfidence {
		t.Fatalf("clampConfidence(1.5) = %v, want %v", got, MaxConfidence)
	}
	if got := clampConfidence(0.5); got != 0.5 {
		t.Fatalf("clampConfidence(0.5) = %v, want 0.5", got)
	}
}
