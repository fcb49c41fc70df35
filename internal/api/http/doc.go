// Package http contains the gin handlers of the chat gateway.
//
// Routes:
//   - GET  /        service info
//   - GET  /health  liveness
//   - POST /chat    relay a message to the flow engine
//   - GET  /flows   flow catalogue
//   - GET  /docs    registered route catalogue
//
// Every error response has the body {"detail": "..."}.
package http
