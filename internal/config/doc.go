// Package config loads, validates, and normalizes caption's TOML
// configuration.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - OpenAI: speech-to-text and chat-completion translation settings
//   - MyMemory: free translation fallback settings
//   - Blob: object storage used for large upload indirection
//   - Upload: file validation limits for the upload endpoint
//   - Logging: log format and level
//
// Provider credentials live only here; clients receive them through explicit
// construction rather than reading process environment at call time.
package config
