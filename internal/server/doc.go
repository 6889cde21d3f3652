// Package server exposes the caption JSON API: transcription, translation,
// media upload, the upload registry, segment editing with SRT export, and a
// health snapshot.
package server
