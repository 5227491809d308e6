package gh

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mrz1836/go-commit-coach/internal/testutil"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

// NewMockClient creates a new MockClient
func NewMockClient() *MockClient {
	return &MockClient{}
}

// VerifyConnection mock implementation
func (m *MockClient) VerifyConnection(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// GetOwnerProfile mock implementation
func (m *MockClient) GetOwnerProfile(ctx context.Context) (*Profile, error) {
	args := m.Called(ctx)
	return testutil.HandleTwoValueReturn[*Profile](args)
}

// ListRepositories mock implementation
func (m *MockClient) ListRepositories(ctx context.Context, owner string, page, perPage int) ([]Repository, error) {
	args := m.Called(ctx, owner, page, perPage)
	return testutil.HandleTwoValueReturn[[]Repository](args)
}

// ListCommits mock implementation
func (m *MockClient) ListCommits(ctx context.Context, owner, repo string, page, perPage int) ([]CommitRecord, *PageRange, error) {
	args := m.Called(ctx, owner, repo, page, perPage)

	var records []CommitRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]CommitRecord)
	}
	var pages *PageRange
	if args.Get(1) != nil {
		pages = args.Get(1).(*PageRange)
	}
	return records, pages, args.Error(2)
}

// GetLatestRelease mock implementation
func (m *MockClient) GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	args := m.Called(ctx, owner, repo)
	return testutil.HandleTwoValueReturn[*Release](args)
}
