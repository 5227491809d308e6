package gh

import (
	"context"

	"github.com/sirupsen/logrus"

	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/logging"
)

// DefaultCommitsPerPage is the page size used for commit history fetches
// when the caller does not specify one.
const DefaultCommitsPerPage = 10

// HistoryFetcher retrieves the complete commit history of a repository by
// walking Link-header pagination. It holds no per-fetch state: every
// FetchAll call owns its own accumulator, so concurrent fetches for
// different repositories never contaminate each other.
type HistoryFetcher struct {
	client Client
	logger *logrus.Logger
}

// NewHistoryFetcher creates a fetcher on top of a GitHub client.
func NewHistoryFetcher(client Client, logger *logrus.Logger) *HistoryFetcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HistoryFetcher{client: client, logger: logger}
}

// FetchAll returns every commit record of owner/repo in page order.
//
// Page 1 is fetched first; its Link header alone decides whether further
// pages exist. When it yields a page range, pages next through last are
// fetched sequentially in ascending order with the same page size, and each
// page's records are appended. Later pages never re-check the header, so a
// history that grows mid-fetch is not chased; this also rules out an
// infinite loop from a misbehaving header.
//
// Semantics are all-or-nothing: an error on any page, including pages after
// a successful page 1, aborts the fetch and returns no records. A
// repository with no commits fails with ErrEmptyHistory.
func (f *HistoryFetcher) FetchAll(ctx context.Context, owner, repo string, perPage int) ([]CommitRecord, error) {
	if perPage == 0 {
		perPage = DefaultCommitsPerPage
	}

	records, pages, err := f.client.ListCommits(ctx, owner, repo, 1, perPage)
	if err != nil {
		return nil, err
	}

	if pages != nil {
		for page := pages.Next; page <= pages.Last; page++ {
			pageRecords, _, err := f.client.ListCommits(ctx, owner, repo, page, perPage)
			if err != nil {
				return nil, appErrors.WrapWithContext(err, "fetch commit page")
			}
			records = append(records, pageRecords...)
		}
	}

	f.logger.WithFields(logrus.Fields{
		logging.StandardFields.Owner:       owner,
		logging.StandardFields.RepoName:    repo,
		logging.StandardFields.CommitCount: len(records),
	}).Info("Fetched commit history")

	return records, nil
}
