package translation

import (
	"fmt"
	"strings"

	"caption/internal/language"
)

// primarySystemPrompt instructs the main chat model. The target language is
// named in its own script where known.
func primarySystemPrompt(targetLanguage string, context []string) string {
	targetName := language.PromptName(targetLanguage)

	var b strings.Builder
	fmt.Fprintf(&b, `You are a subtitle translation expert specializing in %s with deep cultural and linguistic knowledge.

Core principles:
- Preserve original meaning while adapting to the target culture
- Maintain emotional resonance and speaker intent
- Maximum 2 lines per subtitle block, at most 50 characters per line
- Use natural, contemporary language patterns; avoid literal translations that sound awkward
- Adapt idioms, metaphors, and cultural references appropriately
- Keep names, titles, numbers, and technical terms consistent
- Proper grammar and punctuation for the target language
`, targetName)

	if len(context) > 0 {
		fmt.Fprintf(&b, "\nPrevious dialogue for context: %q\n", strings.Join(context, " "))
	}

	fmt.Fprintf(&b, "\nTranslate this subtitle text to %s:", targetName)
	return b.String()
}

func primaryUserPrompt(text string) string {
	return fmt.Sprintf("Text to translate: %q\n\nProvide ONLY the translated text without explanations or formatting.", text)
}

// fallbackSystemPrompt instructs the cheaper fallback model. Deliberately
// simple: the fallback exists to produce something usable, not something
// culturally polished.
func fallbackSystemPrompt(targetLanguage string) string {
	return fmt.Sprintf(
		"You are a professional subtitle translator. Translate the following text to %s. Keep it natural, concise, and suitable for subtitles. Maximum 2 lines.",
		language.PromptName(targetLanguage),
	)
}
