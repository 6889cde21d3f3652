// Package main hosts the captiond daemon entrypoint.
//
// captiond loads the TOML configuration, builds the structured logger,
// acquires the single-instance lock, opens the upload registry, constructs
// the provider clients and orchestrators, and serves the JSON API until
// SIGINT or SIGTERM.
package main
