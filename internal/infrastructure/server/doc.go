// Package server assembles the gateway: it picks the flow engine client,
// builds the gin router with its middleware stack and owns the http.Server
// lifecycle.
package server
