/*
Package tracing provides lightweight request tracing for the gateway.

A trace follows one chat request from the inbound HTTP call through the
relay to the flow engine. Trace and span ids are prefixed ULIDs and travel
in the X-Trace-ID and X-Span-ID headers, both on responses and on the
outbound Langflow request.

# Usage

	tracer := tracing.New("chat-gateway", logger)
	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "langflow.run")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	headers := make(map[string]string)
	tracing.InjectTraceContext(ctx, headers)

Completed spans are buffered and logged asynchronously; when the buffer is
full spans are dropped with a warning rather than blocking the request.
*/
package tracing
