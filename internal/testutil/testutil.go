// Package testutil provides mocks shared by handler and service tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/zemuria/chat-backend/internal/flowengine"
)

// MockFlowEngineClient is a mock implementation of flowengine.Client
type MockFlowEngineClient struct {
	mock.Mock
}

// Run mocks the Run method.
func (m *MockFlowEngineClient) Run(ctx context.Context, req flowengine.RunRequest) (*flowengine.RunResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flowengine.RunResult), args.Error(1)
}

// Name mocks the Name method.
func (m *MockFlowEngineClient) Name() string {
	args := m.Called()
	return args.String(0)
}

// NewMockFlowEngineClient creates a mock named "mock" whose expectations
// are asserted when the test ends.
func NewMockFlowEngineClient(t *testing.T) *MockFlowEngineClient {
	t.Helper()
	m := new(MockFlowEngineClient)

	m.On("Name").Return("mock").Maybe()

	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ExpectRun registers a Run call for message returning text.
func (m *MockFlowEngineClient) ExpectRun(message, text string) *mock.Call {
	return m.On("Run", mock.Anything, mock.MatchedBy(func(req flowengine.RunRequest) bool {
		return req.Message == message
	})).Return(&flowengine.RunResult{Text: text}, nil)
}

// ExpectRunError registers a failing Run call for any message.
func (m *MockFlowEngineClient) ExpectRunError(err error) *mock.Call {
	return m.On("Run", mock.Anything, mock.Anything).Return(nil, err)
}
