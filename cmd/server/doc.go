// Package main is the entry point for the Zemuria chat gateway.
//
// The gateway exposes a small JSON API in front of a Langflow flow engine:
//
//	Chat frontend → chat gateway → Langflow (optional, echo by default)
//
// Configuration:
//   - .env file in the working directory, when present
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Echo relay on the default port
//	./server
//
//	# Relay to a local Langflow, coloured debug logs
//	./server -langflow http://localhost:7860 -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
