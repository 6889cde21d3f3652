// Package transcription orchestrates media transcription through the speech
// provider and optional per-segment translation.
//
// The orchestrator accepts inline payload bytes or a blob URL fetched fully
// into memory; payloads are bounded by the upload limits. Media decoding is
// entirely the provider's job. The orchestrator only stages the payload in a
// scratch file for the multipart call and guarantees the scratch file is
// removed on success and failure alike.
package transcription
