// Package openai provides the client for the OpenAI speech-to-text and chat
// completion APIs.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send system/user prompts to a chat model, receive the
// message content.
// Client.Transcribe: upload a media file to the transcription endpoint and
// receive per-segment timing, text, and log-probability scores.
//
// # Fallback
//
// The client makes exactly one attempt per call. Retrying is the caller's
// concern: the translation orchestrator runs an explicit strategy chain
// (primary model, fallback model, free provider) instead of retrying a
// single model, so transient failures surface here as errors and are
// absorbed there.
package openai
