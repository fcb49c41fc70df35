package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zemuria/chat-backend/internal/flowengine"
	"github.com/zemuria/chat-backend/internal/infrastructure/monitoring"
	"github.com/zemuria/chat-backend/internal/shared/types"
	"github.com/zemuria/chat-backend/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestGetInfo(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "http://langflow:7860")

	info := svc.GetInfo()
	assert.Equal(t, "Zemuria Chat Backend", info.Message)
	assert.Equal(t, "running", info.Status)
	assert.Equal(t, "http://langflow:7860", info.LangflowURL)
	assert.Equal(t, "/docs", info.Docs)
}

func TestGetHealth(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "")

	assert.Equal(t, types.Health{Status: "healthy", Service: "zemuria-chat-backend"}, svc.GetHealth())
}

func TestListFlows(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "")

	list := svc.ListFlows()
	require.Len(t, list.Flows, 1)
	assert.Equal(t, "zem-flow", list.Flows[0].ID)
	assert.Equal(t, "Zemuria Chat Flow", list.Flows[0].Name)
	assert.Equal(t, "Main chat flow with OpenAI integration", list.Flows[0].Description)

	// callers cannot mutate the catalogue
	list.Flows[0].ID = "changed"
	assert.Equal(t, "zem-flow", svc.ListFlows().Flows[0].ID)
}

func TestChatEcho(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "")

	tests := []struct {
		name      string
		req       types.ChatRequest
		wantReply string
	}{
		{name: "with session", req: types.ChatRequest{Message: "hello", SessionID: strPtr("abc")}, wantReply: "Echo: hello"},
		{name: "without session", req: types.ChatRequest{Message: "hi"}, wantReply: "Echo: hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Chat(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReply, resp.Response)
			assert.Equal(t, tt.req.SessionID, resp.SessionID)
		})
	}
}

func TestChatIdempotent(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "")
	req := types.ChatRequest{Message: "same", SessionID: strPtr("s1")}

	first, err := svc.Chat(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Chat(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestChatRelaysEmptyAndBlankMessages(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "")

	for _, msg := range []string{"", "   ", strings.Repeat("x", 20*1024)} {
		resp, err := svc.Chat(context.Background(), types.ChatRequest{Message: msg})
		require.NoError(t, err)
		assert.Equal(t, "Echo: "+msg, resp.Response)
		assert.Nil(t, resp.SessionID)
	}
}

func TestChatPassesSessionToClient(t *testing.T) {
	client := testutil.NewMockFlowEngineClient(t)
	client.On("Run", mock.Anything, flowengine.RunRequest{Message: "hello", SessionID: strPtr("abc")}).
		Return(&flowengine.RunResult{Text: "Hi there"}, nil).Once()

	resp, err := NewService(client, "").Chat(context.Background(), types.ChatRequest{Message: "hello", SessionID: strPtr("abc")})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", resp.Response)
	assert.Equal(t, "abc", *resp.SessionID)
}

func TestChatClientErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{name: "timeout", err: flowengine.ErrDownstreamTimeout, wantKind: "timeout"},
		{name: "unavailable", err: flowengine.ErrDownstreamUnavailable, wantKind: "unavailable"},
		{name: "other", err: errors.New("boom"), wantKind: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := monitoring.NewMetrics()
			client := testutil.NewMockFlowEngineClient(t)
			client.ExpectRunError(tt.err).Once()

			svc := NewService(client, "").WithMetrics(metrics)

			resp, err := svc.Chat(context.Background(), types.ChatRequest{Message: "q"})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.err)
			assert.NotErrorIs(t, err, ErrInvalidRequest)
			assert.Equal(t, tt.wantKind, errorKind(err))
		})
	}
}

func TestChatConcurrent(t *testing.T) {
	svc := NewService(flowengine.NewEchoClient(), "").WithMetrics(monitoring.NewMetrics())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Chat(context.Background(), types.ChatRequest{Message: "ping"})
			assert.NoError(t, err)
			assert.Equal(t, "Echo: ping", resp.Response)
		}()
	}
	wg.Wait()
}
