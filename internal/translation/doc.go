// Package translation orchestrates subtitle text translation across an
// explicit chain of providers.
//
// # Strategy Chain
//
// Each request is evaluated against an ordered list of strategies: the
// primary chat model with a cultural-adaptation prompt, a cheaper fallback
// chat model with a simple prompt, and finally the free MyMemory service.
// Each strategy returns a tagged outcome rather than relying on exception
// interception, so the fallback order is first-class, testable data. When
// every strategy fails the caller still receives a result: the original text
// with minimum confidence. Translation never fails past this boundary.
//
// # Confidence
//
// Confidence for the chat strategies comes from a pure heuristic over the
// (original, translated) pair: length ratio, numeral preservation, and line
// length. It is a sanity signal, not a calibrated linguistic quality metric.
// MyMemory results reuse the service's own match score, capped at 0.7.
package translation
