package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ExportMode selects which text lines an SRT cue carries.
type ExportMode string

const (
	// ExportOriginal writes the transcribed text only.
	ExportOriginal ExportMode = "original"
	// ExportTranslation writes the translation, falling back to the
	// original text for untranslated segments.
	ExportTranslation ExportMode = "translation"
	// ExportBilingual writes the original line followed by the translation.
	ExportBilingual ExportMode = "bilingual"
)

// ParseExportMode validates an export mode name. Empty defaults to original.
func ParseExportMode(value string) (ExportMode, error) {
	switch ExportMode(strings.ToLower(strings.TrimSpace(value))) {
	case ExportOriginal, "":
		return ExportOriginal, nil
	case ExportTranslation:
		return ExportTranslation, nil
	case ExportBilingual:
		return ExportBilingual, nil
	default:
		return "", fmt.Errorf("invalid export mode %q", value)
	}
}

// FormatSRT renders segments as an SRT document. Cues are numbered from 1 in
// slice order and timestamps use the comma millisecond separator. Formatting
// is a pure function of the input, so repeated exports of the same segments
// are byte-identical.
func FormatSRT(segments []Segment, mode ExportMode) string {
	var b strings.Builder
	for i, segment := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatSRTTimestamp(segment.StartTime), FormatSRTTimestamp(segment.EndTime))
		switch mode {
		case ExportTranslation:
			if strings.TrimSpace(segment.Translation) != "" {
				b.WriteString(segment.Translation)
			} else {
				b.WriteString(segment.Text)
			}
		case ExportBilingual:
			b.WriteString(segment.Text)
			if strings.TrimSpace(segment.Translation) != "" {
				b.WriteString("\n")
				b.WriteString(segment.Translation)
			}
		default:
			b.WriteString(segment.Text)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// FormatSRTTimestamp renders seconds as HH:MM:SS,mmm.
func FormatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	hours := totalMillis / 3600000
	minutes := (totalMillis % 3600000) / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseSRT reads an SRT document back into segments. Cue numbers are ignored;
// each parsed segment gets a fresh ID and full confidence since the text came
// from a human-edited file.
func ParseSRT(content string) ([]Segment, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if trimmed == "" {
		return nil, nil
	}

	var segments []Segment
	for _, block := range strings.Split(trimmed, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		// First line is the cue number when numeric; tolerate files without.
		timingIndex := 0
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			timingIndex = 1
		}
		if timingIndex >= len(lines) || !strings.Contains(lines[timingIndex], "-->") {
			continue
		}
		parts := strings.Split(lines[timingIndex], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := ParseSRTTimestamp(parts[0])
		if err != nil {
			return nil, fmt.Errorf("cue start: %w", err)
		}
		end, err := ParseSRTTimestamp(parts[1])
		if err != nil {
			return nil, fmt.Errorf("cue end: %w", err)
		}
		text := strings.TrimSpace(strings.Join(lines[timingIndex+1:], "\n"))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			ID:         uuid.NewString(),
			Text:       text,
			StartTime:  start,
			EndTime:    end,
			Confidence: 1.0,
		})
	}
	return segments, nil
}

// ParseSRTTimestamp parses HH:MM:SS,mmm into seconds. A period separator is
// accepted and normalized to the comma form.
func ParseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
