package flowengine

import "context"

// EchoPrefix is prepended to the message by EchoClient
const EchoPrefix = "Echo: "

// EchoClient answers every message with the message itself. It stands in
// for the flow engine until a real flow is wired up.
type EchoClient struct{}

// NewEchoClient creates an echo client
func NewEchoClient() *EchoClient {
	return &EchoClient{}
}

// Run returns EchoPrefix + message
func (e *EchoClient) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	return &RunResult{Text: EchoPrefix + req.Message}, nil
}

// Name identifies the client in logs and metrics
func (e *EchoClient) Name() string {
	return "echo"
}
