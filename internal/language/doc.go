// Package language provides unified language code normalization and naming.
//
// All language-related conversions (ISO 639-1 codes, display names, native
// names used in translation prompts, the speech provider's supported-language
// set) are consolidated here to avoid duplication across the transcription,
// translation, and CLI packages.
package language
