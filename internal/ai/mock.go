package ai

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a testify-backed Provider for analyzer tests.
type MockProvider struct {
	mock.Mock
}

// Ensure MockProvider implements Provider interface.
var _ Provider = (*MockProvider)(nil)

// Name returns the provider identifier.
func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

// GenerateText generates text based on the given prompt.
func (m *MockProvider) GenerateText(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*GenerateResponse)
	return resp, args.Error(1)
}

// IsAvailable checks if the provider is properly configured and ready.
func (m *MockProvider) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

// newBaseMock returns an available mock named "mock" with no generation
// expectations yet.
func newBaseMock() *MockProvider {
	m := &MockProvider{}
	m.On("IsAvailable").Return(true)
	m.On("Name").Return("mock")
	return m
}

// NewSuccessMock creates a provider whose every generation yields message,
// standing in for a generated commit message or history review.
func NewSuccessMock(message string) *MockProvider {
	m := newBaseMock()
	m.On("GenerateText", mock.Anything, mock.Anything).
		Return(&GenerateResponse{Content: message, FinishReason: "stop"}, nil)
	return m
}

// NewUnavailableMock creates a provider that reports as unavailable, as an
// unconfigured backend would.
func NewUnavailableMock() *MockProvider {
	m := &MockProvider{}
	m.On("IsAvailable").Return(false)
	m.On("Name").Return("mock")
	return m
}

// NewErrorMock creates a provider whose every generation fails with err.
func NewErrorMock(err error) *MockProvider {
	m := newBaseMock()
	m.On("GenerateText", mock.Anything, mock.Anything).Return(nil, err)
	return m
}

// NewRateLimitMock fails the first generation with a rate limit error and
// succeeds with message on the second, exercising the retry path.
func NewRateLimitMock(message string) *MockProvider {
	m := newBaseMock()
	m.On("GenerateText", mock.Anything, mock.Anything).
		Return(nil, RateLimitError("mock", "1s")).Once()
	m.On("GenerateText", mock.Anything, mock.Anything).
		Return(&GenerateResponse{Content: message, FinishReason: "stop"}, nil).Once()
	return m
}
