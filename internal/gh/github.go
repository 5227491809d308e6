package gh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/jsonutil"
	"github.com/mrz1836/go-commit-coach/internal/logging"
)

// Common errors
var (
	ErrReleaseNotFound = errors.New("no published release found")
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// MaxPerPage is GitHub's single-page maximum for the listings this
	// client performs. Larger values are rejected before any network call.
	MaxPerPage = 30

	// DefaultTimeout bounds each individual HTTP request.
	DefaultTimeout = 30 * time.Second

	// defaultRequestsPerSecond keeps the client comfortably inside
	// GitHub's secondary rate limits during long pagination runs.
	defaultRequestsPerSecond = 8
)

// Options configures the HTTP GitHub client.
type Options struct {
	// Token is the bearer token sent with every request. Leaving it empty
	// yields an anonymous client, which only suits public endpoints such
	// as the latest-release lookup.
	Token string

	// BaseURL overrides the API root, primarily for tests. Optional.
	BaseURL string

	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls. Zero means the default.
	RequestsPerSecond float64
}

// httpClient implements the Client interface against the GitHub REST API.
type httpClient struct {
	baseURL   string
	token     string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *logrus.Logger
	logConfig *logging.LogConfig
}

// NewClient creates a new GitHub client using direct HTTP calls.
//
// Parameters:
// - opts: Client options; an empty Token produces an anonymous client
// - logger: Logger instance for general logging
// - logConfig: Configuration for debug logging and verbose settings
//
// Returns:
// - GitHub client interface implementation
func NewClient(opts Options, logger *logrus.Logger, logConfig *logging.LogConfig) (Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &httpClient{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		token:     opts.Token,
		client:    &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:    logger,
		logConfig: logConfig,
	}, nil
}

// apiResponse carries the pieces of an HTTP response the callers need.
type apiResponse struct {
	status int
	body   []byte
	link   string
}

func (r *apiResponse) success() bool {
	return r.status >= 200 && r.status < 300
}

// get performs one authenticated GET against the API. Transport errors are
// returned as-is; HTTP error statuses are returned inside apiResponse for
// the caller to interpret.
func (c *httpClient) get(ctx context.Context, path string, query url.Values) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, appErrors.WrapWithContext(err, "wait for rate limiter")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "build request")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "perform request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "read response body")
	}

	if c.logConfig != nil && c.logConfig.Debug.API {
		c.logger.WithFields(logrus.Fields{
			logging.StandardFields.Component:  logging.ComponentNames.GitHubAPI,
			logging.StandardFields.Operation:  path,
			logging.StandardFields.Status:     resp.StatusCode,
			logging.StandardFields.DurationMs: time.Since(start).Milliseconds(),
		}).Debug("GitHub API request completed")
	}

	return &apiResponse{
		status: resp.StatusCode,
		body:   body,
		link:   resp.Header.Get("Link"),
	}, nil
}

// VerifyConnection checks whether the token can reach the profile endpoint.
func (c *httpClient) VerifyConnection(ctx context.Context) (bool, error) {
	resp, err := c.get(ctx, "/user", url.Values{"type": {"all"}})
	if err != nil {
		return false, appErrors.WrapWithContext(err, "verify connection")
	}
	return resp.success(), nil
}

// GetOwnerProfile fetches the authenticated user's login and avatar URL.
func (c *httpClient) GetOwnerProfile(ctx context.Context) (*Profile, error) {
	resp, err := c.get(ctx, "/user", url.Values{"type": {"all"}})
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch owner profile")
	}
	if !resp.success() {
		return nil, fmt.Errorf("%w: profile request returned %d", appErrors.ErrAuthentication, resp.status)
	}

	profile, err := jsonutil.UnmarshalJSON[Profile](resp.body)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse profile response")
	}
	if profile.Login == "" {
		// A success response without a login violates the API contract.
		return nil, fmt.Errorf("%w: %w", appErrors.ErrAuthentication, appErrors.ErrMissingLogin)
	}

	c.logger.WithField(logging.StandardFields.Owner, profile.Login).Info("Fetched owner profile")
	return &profile, nil
}

// ListRepositories returns one page of the owner's repositories.
func (c *httpClient) ListRepositories(ctx context.Context, owner string, page, perPage int) ([]Repository, error) {
	if owner == "" {
		return nil, appErrors.ErrEmptyOwner
	}
	if err := validatePaging(page, perPage); err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, "/user/repos", pagingQuery(page, perPage))
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "list repositories")
	}
	if !resp.success() {
		// A typed failure lets callers distinguish "request failed" from
		// "owner has no repositories".
		return nil, appErrors.UnexpectedStatusError("list repositories", resp.status)
	}

	entries, err := jsonutil.UnmarshalJSON[[]repoResponse](resp.body)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse repository list")
	}

	repos := make([]Repository, 0, len(entries))
	for _, entry := range entries {
		repos = append(repos, Repository{
			FullName: owner + "/" + strings.ToLower(entry.Name),
			CloneURL: entry.CloneURL,
		})
	}

	c.logger.WithFields(logrus.Fields{
		logging.StandardFields.Owner: owner,
		"repo_count":                 len(repos),
	}).Info("Fetched repository list")
	return repos, nil
}

// ListCommits returns one page of commit history plus the parsed Link header.
func (c *httpClient) ListCommits(ctx context.Context, owner, repo string, page, perPage int) ([]CommitRecord, *PageRange, error) {
	if owner == "" {
		return nil, nil, appErrors.ErrEmptyOwner
	}
	if repo == "" {
		return nil, nil, appErrors.ErrEmptyRepo
	}
	if err := validatePaging(page, perPage); err != nil {
		return nil, nil, err
	}

	path := fmt.Sprintf("/repos/%s/%s/commits", owner, repo)
	resp, err := c.get(ctx, path, pagingQuery(page, perPage))
	if err != nil {
		return nil, nil, appErrors.WrapWithContext(err, "list commits")
	}
	if !resp.success() {
		// An empty repository answers with a status object instead of a
		// commit array (409 on the REST API).
		if sentinel, serr := jsonutil.UnmarshalJSON[emptyHistoryResponse](resp.body); serr == nil && sentinel.Status != "" {
			return nil, nil, appErrors.ErrEmptyHistory
		}
		return nil, nil, appErrors.UnexpectedStatusError("list commits", resp.status)
	}

	entries, err := jsonutil.UnmarshalJSON[[]commitEnvelope](resp.body)
	if err != nil {
		// Some deployments signal empty history with a 200 status object.
		if sentinel, serr := jsonutil.UnmarshalJSON[emptyHistoryResponse](resp.body); serr == nil && sentinel.Status != "" {
			return nil, nil, appErrors.ErrEmptyHistory
		}
		return nil, nil, appErrors.WrapWithContext(err, "parse commit list")
	}

	records := make([]CommitRecord, 0, len(entries))
	for _, entry := range entries {
		// Entries without a commit sub-object should never happen; skip
		// them instead of failing the whole page.
		if entry.Commit == nil {
			continue
		}
		record := CommitRecord{Message: entry.Commit.Message}
		if entry.Commit.Author != nil {
			record.Date = entry.Commit.Author.Date
		}
		records = append(records, record)
	}

	return records, ParseLinkHeader(resp.link), nil
}

// GetLatestRelease returns the most recent published release of a repository.
func (c *httpClient) GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	if owner == "" {
		return nil, appErrors.ErrEmptyOwner
	}
	if repo == "" {
		return nil, appErrors.ErrEmptyRepo
	}

	path := fmt.Sprintf("/repos/%s/%s/releases/latest", owner, repo)
	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "get latest release")
	}
	if resp.status == http.StatusNotFound {
		return nil, ErrReleaseNotFound
	}
	if !resp.success() {
		return nil, appErrors.UnexpectedStatusError("get latest release", resp.status)
	}

	release, err := jsonutil.UnmarshalJSON[Release](resp.body)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse release")
	}
	return &release, nil
}

// validatePaging rejects invalid paging parameters before any I/O happens.
func validatePaging(page, perPage int) error {
	if page < 1 {
		return appErrors.ValidationError("page", "must be at least 1")
	}
	if perPage < 1 {
		return appErrors.ValidationError("per_page", "must be at least 1")
	}
	if perPage > MaxPerPage {
		return appErrors.ErrPerPageExceeded
	}
	return nil
}

func pagingQuery(page, perPage int) url.Values {
	return url.Values{
		"page":     {fmt.Sprint(page)},
		"per_page": {fmt.Sprint(perPage)},
	}
}
