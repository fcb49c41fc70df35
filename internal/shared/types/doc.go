// Package types provides shared data structures for the chat gateway.
//
// These are the wire shapes exchanged with HTTP clients. None of them are
// persisted: each value is built for a single request and discarded once the
// response has been written.
//
// Request Types:
//   - ChatRequest: inbound chat message
//
// Response Types:
//   - ChatResponse: relay reply
//   - FlowDescriptor, FlowList: static flow catalogue
//   - Info, Health: process metadata and liveness
//   - Route: one entry of the /docs route catalogue
//   - ErrorResponse: failure body
//
// Example Usage:
//
//	resp := types.ChatResponse{
//	    Response:  "Echo: hello",
//	    SessionID: req.SessionID,
//	}
package types
