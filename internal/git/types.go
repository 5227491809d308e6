package git

import (
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ChangeKind classifies how a file changed in a status snapshot.
type ChangeKind string

// Change kinds reported in status listings.
const (
	KindAdded     ChangeKind = "added"
	KindModified  ChangeKind = "modified"
	KindDeleted   ChangeKind = "deleted"
	KindRenamed   ChangeKind = "renamed"
	KindUntracked ChangeKind = "untracked"
)

// FileStatus is one changed file in a status snapshot. Paths are unique
// within each list; a partially staged file may appear in both the staged
// and the unstaged list.
type FileStatus struct {
	Path string
	Kind ChangeKind
}

// Status is the result of a repository status inspection. Staged is the
// diff between the index and the current commit; Unstaged is the diff
// between the working tree and the index, unioned with untracked files.
type Status struct {
	Staged   []FileStatus
	Unstaged []FileStatus
}

// DiffEntry holds the whole before/after content of one staged file.
//
// Before is empty for a newly added file; After is empty for a deletion.
// Binary or otherwise undecodable content collapses to the same empty
// sentinel; raw bytes never leak into a diff set.
type DiffEntry struct {
	Path   string
	Before string
	After  string
}

// StagedDiffSet maps file path to its staged before/after content. It is
// built fresh from a snapshot on every request and must never outlive a
// staging mutation.
type StagedDiffSet map[string]DiffEntry

// StagedSnapshot captures the staged diff objects at the moment of a Status
// call. BuildStagedDiffSet requires one, which makes it structurally
// impossible to build a diff set from staging state that was never read.
type StagedSnapshot struct {
	changes []stagedChange
}

// Len returns the number of staged changes captured in the snapshot.
func (s *StagedSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.changes)
}

// stagedChange is one staged file with its HEAD-side and index-side blobs.
// Either side may be nil: from is nil for an added file, to is nil for a
// deleted one.
type stagedChange struct {
	fromPath string
	toPath   string
	from     *object.File
	to       *object.File
}

// statusCodeKind maps a go-git status code to a ChangeKind.
func statusCodeKind(code gitlib.StatusCode) ChangeKind {
	switch code {
	case gitlib.Added:
		return KindAdded
	case gitlib.Deleted:
		return KindDeleted
	case gitlib.Renamed:
		return KindRenamed
	case gitlib.Untracked:
		return KindUntracked
	default:
		return KindModified
	}
}
