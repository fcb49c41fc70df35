// Package gateway implements the chat gateway service.
//
// The service answers the four public operations: service info, health,
// chat relay and the flow catalogue. It is stateless apart from read-only
// configuration and the injected flow engine client, so a single instance
// is shared by all request goroutines.
package gateway
