// Package main hosts the caption CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the captiond daemon: health checks, upload listings,
// transcription and translation runs, plus offline SRT conversion and
// configuration scaffolding. It centralizes configuration resolution and
// server discovery so subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
