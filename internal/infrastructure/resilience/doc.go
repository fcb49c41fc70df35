/*
Package resilience provides the circuit breaker guarding calls to the flow engine.

# Overview

When the flow engine is down or slow, the breaker opens and chat requests fail
fast with ErrCircuitOpen instead of piling up on the outbound timeout.

# Usage

	breaker := resilience.New("langflow", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	reply, err := resilience.Execute(breaker, func() (*Reply, error) {
		return client.Call(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
