package gh

// Profile represents the authenticated GitHub user.
type Profile struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository represents a repository owned by the authenticated user.
//
// FullName is "owner/name" with the repository name lowercased, matching
// the format the rest of the application keys on.
type Repository struct {
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
}

// CommitRecord is one entry of a repository's commit history.
//
// Date is the author date as returned by the API (ISO 8601). Records are
// immutable once created and ordered as the API returns them:
// reverse-chronological, page by page.
type CommitRecord struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// Release represents a published GitHub release.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// repoResponse is the wire shape of a repository list entry.
type repoResponse struct {
	Name     string `json:"name"`
	CloneURL string `json:"clone_url"`
}

// commitEnvelope is the wire shape of one commit list entry. The Commit
// sub-object is expected to always be present but the API contract is not
// trusted: a nil Commit is skipped rather than crashing the fetch.
type commitEnvelope struct {
	SHA    string        `json:"sha"`
	Commit *commitDetail `json:"commit"`
}

type commitDetail struct {
	Message string        `json:"message"`
	Author  *commitAuthor `json:"author"`
}

type commitAuthor struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// emptyHistoryResponse is the wire shape GitHub returns for a repository
// with no commits: an object with a status field instead of a commit array.
type emptyHistoryResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
