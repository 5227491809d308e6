package gh

import "context"

// Client defines the interface for GitHub read operations
type Client interface {
	// VerifyConnection checks whether the configured token can reach the
	// profile endpoint. A transport failure propagates as an error; an
	// invalid token is a normal (false, nil) outcome, not an error.
	VerifyConnection(ctx context.Context) (bool, error)

	// GetOwnerProfile fetches the authenticated user's login and avatar.
	// A success response without a login field violates the API contract
	// and fails with an authentication error.
	GetOwnerProfile(ctx context.Context) (*Profile, error)

	// ListRepositories returns one page of the owner's repositories.
	// perPage above 30 fails validation before any network call.
	ListRepositories(ctx context.Context, owner string, page, perPage int) ([]Repository, error)

	// ListCommits returns one page of a repository's commit history plus
	// the page range parsed from the response's Link header (nil when the
	// listing fits in a single page).
	ListCommits(ctx context.Context, owner, repo string, page, perPage int) ([]CommitRecord, *PageRange, error)

	// GetLatestRelease returns the most recent published release of a
	// repository.
	GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error)
}
