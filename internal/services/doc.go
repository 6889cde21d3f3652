// Package services defines the shared error taxonomy for upstream provider
// clients and the helpers that map classified failures onto HTTP responses.
//
// Sub-packages hold one client per provider: openai (speech-to-text and chat
// translation), mymemory (free dictionary translation), and blobstore (object
// storage for large uploads).
package services
