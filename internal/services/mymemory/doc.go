// Package mymemory provides the client for the free MyMemory translation
// service.
//
// The service needs no API key and is used as the last translation fallback
// (or directly, when the caller selects it). Because the free tier is
// rate-limited, the client paces consecutive calls with a configurable
// minimum interval, following the same pacing approach used for other
// quota-bound upstreams.
package mymemory
