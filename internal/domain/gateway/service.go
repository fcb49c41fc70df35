package gateway

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zemuria/chat-backend/internal/flowengine"
	"github.com/zemuria/chat-backend/internal/infrastructure/monitoring"
	"github.com/zemuria/chat-backend/internal/infrastructure/tracing"
	"github.com/zemuria/chat-backend/internal/shared/types"
)

// Service identity reported by the info and health endpoints
const (
	ServiceName    = "Zemuria Chat Backend"
	ServiceID      = "zemuria-chat-backend"
	StatusRunning  = "running"
	StatusHealthy  = "healthy"
	DocsPath       = "/docs"
	DefaultFlowID  = "zem-flow"
	relayOperation = "run"
)

// ErrInvalidRequest marks a chat request rejected before relaying
var ErrInvalidRequest = errors.New("invalid request")

var defaultFlows = []types.FlowDescriptor{
	{
		ID:          DefaultFlowID,
		Name:        "Zemuria Chat Flow",
		Description: "Main chat flow with OpenAI integration",
	},
}

// Service relays chat messages to the flow engine
type Service struct {
	client      flowengine.Client
	langflowURL string
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

// NewService creates a gateway service around a flow engine client
func NewService(client flowengine.Client, langflowURL string) *Service {
	return &Service{
		client:      client,
		langflowURL: langflowURL,
		logger:      zap.NewNop(),
	}
}

// WithMetrics adds relay metrics to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// WithLogger sets the service logger
func (s *Service) WithLogger(logger *zap.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// GetInfo describes the running service
func (s *Service) GetInfo() types.Info {
	return types.Info{
		Message:     ServiceName,
		Status:      StatusRunning,
		LangflowURL: s.langflowURL,
		Docs:        DocsPath,
	}
}

// GetHealth reports liveness
func (s *Service) GetHealth() types.Health {
	return types.Health{
		Status:  StatusHealthy,
		Service: ServiceID,
	}
}

// ListFlows returns the flow catalogue
func (s *Service) ListFlows() types.FlowList {
	flows := make([]types.FlowDescriptor, len(defaultFlows))
	copy(flows, defaultFlows)
	return types.FlowList{Flows: flows}
}

// Chat relays a message and returns the reply with the caller's session id
// unchanged.
func (s *Service) Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	var timer *monitoring.Timer
	if s.metrics != nil {
		timer = monitoring.NewTimer(s.metrics, s.client.Name(), relayOperation)
	}

	result, err := s.client.Run(ctx, flowengine.RunRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		kind := errorKind(err)
		if timer != nil {
			timer.Stop("error")
			s.metrics.RecordRelayError(s.client.Name(), kind)
		}
		s.logger.Warn("relay failed",
			zap.String("client", s.client.Name()),
			zap.String("kind", kind),
			zap.String("trace_id", string(tracing.GetTraceID(ctx))),
			zap.Error(err),
		)
		return nil, fmt.Errorf("relay via %s: %w", s.client.Name(), err)
	}
	if timer != nil {
		timer.Stop("success")
	}

	return &types.ChatResponse{
		Response:  result.Text,
		SessionID: req.SessionID,
	}, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, flowengine.ErrDownstreamTimeout):
		return "timeout"
	case errors.Is(err, flowengine.ErrDownstreamUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}
