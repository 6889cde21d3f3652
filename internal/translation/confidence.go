package translation

import (
	"regexp"
	"strings"
)

// Confidence bounds and fixed scores used across the strategy chain.
const (
	// MinConfidence is assigned when every translation path has failed and
	// the original text is returned untranslated.
	MinConfidence = 0.1
	// MaxConfidence caps the heuristic score.
	MaxConfidence = 0.99
	// FallbackConfidence marks results from the cheaper fallback model.
	FallbackConfidence = 0.7
	// MemoryConfidenceCap bounds confidence derived from MyMemory match
	// scores.
	MemoryConfidenceCap = 0.7

	baseConfidence = 0.85

	maxLineLength = 50
)

var numeralPattern = regexp.MustCompile(`\d+`)

// confidenceScore estimates translation plausibility from surface features of
// the (original, translated) pair. This is a heuristic sanity signal only:
// it mixes length ratio, numeral-count preservation, and subtitle line
// length into one scalar and says nothing about linguistic quality.
func confidenceScore(original, translated string) float64 {
	confidence := baseConfidence

	// Length ratio: good translations keep a reasonable size relationship.
	ratio := float64(len(translated)) / float64(max(len(original), 1))
	if ratio < 0.3 || ratio > 3.0 {
		confidence -= 0.15
	} else if ratio >= 0.5 && ratio <= 2.0 {
		confidence += 0.05
	}

	// Numerals should survive translation verbatim.
	originalNumbers := numeralPattern.FindAllString(original, -1)
	translatedNumbers := numeralPattern.FindAllString(translated, -1)
	if len(originalNumbers) == len(translatedNumbers) {
		confidence += 0.03
	} else {
		confidence -= 0.08
	}

	// Reward output that already fits subtitle line limits.
	lines := strings.Split(translated, "\n")
	fits := true
	for _, line := range lines {
		if len(line) > maxLineLength {
			fits = false
			break
		}
	}
	if fits {
		confidence += 0.05
	}

	return clampConfidence(confidence)
}

func clampConfidence(value float64) float64 {
	if value < MinConfidence {
		return MinConfidence
	}
	if value > MaxConfidence {
		return MaxConfidence
	}
	return value
}
