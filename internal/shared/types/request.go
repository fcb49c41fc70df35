package types

// ChatRequest represents a chat message request. An empty Message is valid;
// presence is checked when the body is decoded.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id,omitempty"`
}

// ChatResponse represents a relayed chat reply.
// SessionID is copied from the request; it encodes as null when absent.
type ChatResponse struct {
	Response  string  `json:"response"`
	SessionID *string `json:"session_id"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
}
