package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto is the sentinel code meaning "let the speech provider detect".
const Auto = "auto"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	display string   // Human-readable English name
	native  string   // Name in the language itself, preferred in prompts
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "English", "English", []string{"english"}},
	{"zh", "Chinese (Simplified)", "中文（简体）", []string{"chinese"}},
	{"zh-tw", "Chinese (Traditional)", "中文（繁體）", nil},
	{"es", "Spanish", "Español", []string{"spanish"}},
	{"fr", "French", "Français", []string{"french"}},
	{"de", "German", "Deutsch", []string{"german"}},
	{"ja", "Japanese", "日本語", []string{"japanese"}},
	{"ko", "Korean", "한국어", []string{"korean"}},
	{"ar", "Arabic", "العربية", []string{"arabic"}},
	{"ru", "Russian", "Русский", []string{"russian"}},
	{"pt", "Portuguese", "Português", []string{"portuguese"}},
	{"it", "Italian", "Italiano", []string{"italian"}},
	{"hi", "Hindi", "हिन्दी", []string{"hindi"}},
	{"th", "Thai", "ไทย", []string{"thai"}},
	{"vi", "Vietnamese", "Tiếng Việt", []string{"vietnamese"}},
	{"nl", "Dutch", "Nederlands", []string{"dutch"}},
	{"sv", "Swedish", "Svenska", []string{"swedish"}},
	{"da", "Danish", "Dansk", []string{"danish"}},
	{"no", "Norwegian", "Norsk", []string{"norwegian"}},
	{"fi", "Finnish", "Suomi", []string{"finnish"}},
	{"pl", "Polish", "Polski", []string{"polish"}},
	{"tr", "Turkish", "Türkçe", []string{"turkish"}},
	{"id", "Indonesian", "Bahasa Indonesia", []string{"indonesian"}},
	{"ms", "Malay", "Bahasa Melayu", []string{"malay"}},
	{"uk", "Ukrainian", "Українська", []string{"ukrainian"}},
	{"cs", "Czech", "Čeština", []string{"czech"}},
}

// whisperCodes is the speech provider's documented supported-language set.
// Hints outside this set are dropped so the provider falls back to detection.
var whisperCodes = []string{
	"af", "ar", "hy", "az", "be", "bs", "bg", "ca", "zh", "hr", "cs", "da",
	"nl", "en", "et", "fi", "fr", "gl", "de", "el", "he", "hi", "hu", "is",
	"id", "it", "ja", "kn", "kk", "ko", "lv", "lt", "mk", "ms", "ml", "mt",
	"mi", "mr", "ne", "no", "fa", "pl", "pt", "ro", "ru", "sr", "sk", "sl",
	"es", "sw", "sv", "tl", "ta", "th", "tr", "uk", "ur", "vi", "cy",
}

// Index maps built at init time.
var (
	byCode2   map[string]*entry
	byWord    map[string]*entry
	byWhisper map[string]struct{}
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
	byWhisper = make(map[string]struct{}, len(whisperCodes))
	for _, code := range whisperCodes {
		byWhisper[code] = struct{}{}
	}
}

func lookup(code string) *entry {
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Normalize lowercases and trims a language code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsAuto reports whether the code requests automatic language detection.
// Empty input counts as auto.
func IsAuto(code string) bool {
	normalized := Normalize(code)
	return normalized == "" || normalized == Auto
}

// WhisperSupported reports whether the code may be forwarded to the speech
// provider as a language hint. The auto sentinel is never forwarded.
func WhisperSupported(code string) bool {
	if IsAuto(code) {
		return false
	}
	_, ok := byWhisper[Normalize(code)]
	return ok
}

// PromptName returns the native-language name used when instructing the
// translation model, falling back to the display name for codes outside the
// curated table.
func PromptName(code string) string {
	if e := lookup(Normalize(code)); e != nil {
		return e.native
	}
	return DisplayName(code)
}

// DisplayName returns a human-readable language name for any recognized code.
// Unrecognized codes are title-cased as-is so callers always get something
// printable.
func DisplayName(code string) string {
	normalized := Normalize(code)
	if normalized == "" {
		return "Unknown"
	}
	if e := lookup(normalized); e != nil {
		return e.display
	}
	if tag, err := xlanguage.Parse(normalized); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return cases.Title(xlanguage.Und).String(normalized)
}
