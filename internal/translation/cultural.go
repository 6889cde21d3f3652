package translation

import "regexp"

// culturalMarker pairs a source-text pattern with the adaptation tag recorded
// when the pattern's occurrence count changes during translation.
type culturalMarker struct {
	pattern *regexp.Regexp
	label   string
}

var culturalMarkers = []culturalMarker{
	{regexp.MustCompile(`\b(Mr\.|Mrs\.|Ms\.|Dr\.)`), "Title adaptation"},
	{regexp.MustCompile(`\$\d+`), "Currency adaptation"},
	{regexp.MustCompile(`\b\d{1,2}:\d{2}\s?(AM|PM)\b`), "Time format adaptation"},
	{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`), "Date format adaptation"},
}

// detectCulturalAdaptations reports which fixed cultural markers (honorifics,
// currency, 12-hour times, dates) appear in the source but not with the same
// count in the translation. Purely informational; never feeds confidence.
func detectCulturalAdaptations(original, translated string) []string {
	var adaptations []string
	for _, marker := range culturalMarkers {
		originalMatches := marker.pattern.FindAllString(original, -1)
		if len(originalMatches) == 0 {
			continue
		}
		translatedMatches := marker.pattern.FindAllString(translated, -1)
		if len(originalMatches) != len(translatedMatches) {
			adaptations = append(adaptations, marker.label)
		}
	}
	return adaptations
}
