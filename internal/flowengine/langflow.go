package flowengine

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"

	"github.com/zemuria/chat-backend/internal/infrastructure/resilience"
	"github.com/zemuria/chat-backend/internal/infrastructure/tracing"
)

// FallbackReply is returned when Langflow answers without any reply text
const FallbackReply = "I'm sorry, I couldn't process your request right now."

// replyPaths lists where a run response may carry the reply text, in order
// of preference.
var replyPaths = [][]interface{}{
	{"outputs", 0, "outputs", 0, "results", "message", "text"},
	{"outputs", 0, "outputs", 0, "results", "text"},
	{"result"},
	{"message"},
}

// LangflowOptions configures a LangflowClient
type LangflowOptions struct {
	BaseURL string
	FlowID  string
	APIKey  string
	Timeout time.Duration
	Retries int
	// Sanitize strips markup from reply text
	Sanitize bool
	// RateLimit caps outbound requests per second; zero means unlimited
	RateLimit float64
	// OnBreakerChange observes circuit breaker transitions
	OnBreakerChange func(name string, from, to resilience.State)
}

// runPayload is the body of POST /api/v1/run/{flow_id}
type runPayload struct {
	InputValue string                 `json:"input_value"`
	InputType  string                 `json:"input_type"`
	OutputType string                 `json:"output_type"`
	Tweaks     map[string]interface{} `json:"tweaks"`
	SessionID  *string                `json:"session_id,omitempty"`
}

// LangflowClient runs a Langflow flow over HTTP
type LangflowClient struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	policy  *bluemonday.Policy
	flowID  string
	timeout time.Duration
}

// NewLangflowClient creates a client with retries, rate limiting and a
// circuit breaker in front of the flow engine.
func NewLangflowClient(opts LangflowOptions) *LangflowClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil
	// hand the last response back instead of a "giving up" error
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Zemuria-Chat-Gateway/1.0")
	if opts.APIKey != "" {
		restyClient.SetHeader("x-api-key", opts.APIKey)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), int(opts.RateLimit)+1)
	}

	breaker := resilience.New("langflow", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.5)
		},
		// a caller hanging up says nothing about the flow engine
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: opts.OnBreakerChange,
	})

	var policy *bluemonday.Policy
	if opts.Sanitize {
		policy = bluemonday.StrictPolicy()
	}

	return &LangflowClient{
		resty:   restyClient,
		limiter: limiter,
		breaker: breaker,
		policy:  policy,
		flowID:  opts.FlowID,
		timeout: opts.Timeout,
	}
}

// Name identifies the client in logs and metrics
func (c *LangflowClient) Name() string {
	return "langflow"
}

// BreakerState reports the circuit breaker state
func (c *LangflowClient) BreakerState() resilience.State {
	return c.breaker.State()
}

// Run sends the message to the configured flow and extracts the reply.
// The call is bounded by the client timeout and aborted when ctx is done.
func (c *LangflowClient) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := resilience.Execute(c.breaker, func() (*RunResult, error) {
		return c.run(ctx, req)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrDownstreamUnavailable, err)
		}
		return nil, err
	}
	return result, nil
}

func (c *LangflowClient) run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classify(ctx, fmt.Errorf("rate limit: %w", err))
	}

	headers := make(map[string]string)
	tracing.InjectTraceContext(ctx, headers)

	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetPathParam("flowID", c.flowID).
		SetBody(runPayload{
			InputValue: req.Message,
			InputType:  "chat",
			OutputType: "chat",
			Tweaks:     map[string]interface{}{},
			SessionID:  req.SessionID,
		}).
		Post("/api/v1/run/{flowID}")
	if err != nil {
		return nil, classify(ctx, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: run %s returned %s", ErrDownstreamUnavailable, c.flowID, resp.Status())
	}

	body := resp.Body()
	if !sonic.Valid(body) {
		return nil, fmt.Errorf("%w: run %s returned a non-JSON body", ErrDownstreamUnavailable, c.flowID)
	}

	text, ok := extractReply(body)
	if !ok {
		return &RunResult{Text: FallbackReply}, nil
	}
	return &RunResult{Text: c.sanitize(text)}, nil
}

// extractReply returns the first non-empty string found along replyPaths.
func extractReply(body []byte) (string, bool) {
	for _, path := range replyPaths {
		node, err := sonic.Get(body, path...)
		if err != nil {
			continue
		}
		text, err := node.String()
		if err == nil && text != "" {
			return text, true
		}
	}
	return "", false
}

func (c *LangflowClient) sanitize(text string) string {
	if c.policy == nil {
		return text
	}
	// the policy escapes what it keeps; replies are plain text, not HTML
	return html.UnescapeString(c.policy.Sanitize(text))
}

// classify maps transport errors onto the downstream error kinds.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrDownstreamTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrDownstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrDownstreamUnavailable, err)
}
