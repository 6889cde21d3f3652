// Package uploads persists a registry of media files pushed to blob storage
// so the CLI and API can list what the daemon has accepted.
package uploads
