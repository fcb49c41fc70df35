// Package flowengine provides the gateway's outbound capability: turning a
// chat message into a reply produced by the flow engine.
//
// Two implementations of Client exist:
//   - EchoClient: answers "Echo: <message>" without any I/O (the default)
//   - LangflowClient: runs a Langflow flow over HTTP
//
// LangflowClient is built on go-resty/resty with a go-retryablehttp
// transport, a token bucket limiter and a circuit breaker. Failures are
// reported as ErrDownstreamUnavailable or ErrDownstreamTimeout so the HTTP
// layer can map them to distinct status codes.
//
// Example Usage:
//
//	client := flowengine.NewLangflowClient(flowengine.LangflowOptions{
//	    BaseURL: "http://localhost:7860",
//	    FlowID:  "zem-flow",
//	    Timeout: 30 * time.Second,
//	})
//	result, err := client.Run(ctx, flowengine.RunRequest{Message: "hello"})
package flowengine
