package flowengine

import (
	"context"
	"errors"
)

var (
	// ErrDownstreamUnavailable covers connection failures, an open breaker,
	// non-2xx answers and unreadable bodies from the flow engine.
	ErrDownstreamUnavailable = errors.New("flow engine unavailable")
	// ErrDownstreamTimeout is returned when the outbound call exceeds its deadline.
	ErrDownstreamTimeout = errors.New("flow engine timed out")
)

// RunRequest is a single message handed to the flow engine
type RunRequest struct {
	Message   string
	SessionID *string
}

// RunResult is the flow engine's reply
type RunResult struct {
	Text string
}

// Client runs chat messages through a flow engine.
// Implementations must be safe for concurrent use.
type Client interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
	Name() string
}
