// Package git inspects local repositories: staged and unstaged status,
// staging operations, and whole-content diff sets for AI consumption. It
// wraps go-git rather than shelling out, so no git binary is required.
package git

import (
	"errors"
	"os"
	"sort"
	"sync"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"

	appErrors "github.com/mrz1836/go-commit-coach/internal/errors"
	"github.com/mrz1836/go-commit-coach/internal/logging"
)

// Inspector performs all local repository operations.
//
// A single mutex serializes every operation on an instance: a staged diff
// set is built from state captured by the most recent Status call, and a
// concurrent stage/unstage would otherwise race that capture.
type Inspector struct {
	logger    *logrus.Logger
	logConfig *logging.LogConfig
	mu        sync.Mutex
}

// NewInspector creates a repository inspector.
//
// Parameters:
// - logger: Logger instance for general logging
// - logConfig: Configuration for debug logging and verbose settings
//
// Returns:
// - Inspector ready for use against any repository path
func NewInspector(logger *logrus.Logger, logConfig *logging.LogConfig) *Inspector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Inspector{logger: logger, logConfig: logConfig}
}

// open resolves a path to a repository, searching parent directories the
// way git itself does.
func open(path string) (*gitlib.Repository, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, appErrors.ErrInvalidRepository
	}
	repo, err := gitlib.PlainOpenWithOptions(path, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, appErrors.ErrInvalidRepository
		}
		return nil, appErrors.WrapWithContext(err, "open repository")
	}
	return repo, nil
}

// Status inspects the repository at path and returns the staged/unstaged
// file lists together with a snapshot of the staged diff objects.
//
// The snapshot is the only way to build a staged diff set; it pins the
// staging state as of this call, so a later stage/unstage cannot silently
// invalidate a diff set built from it; callers get a fresh snapshot by
// calling Status again.
func (i *Inspector) Status(path string) (*Status, *StagedSnapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	repo, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, appErrors.WrapWithContext(err, "resolve worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return nil, nil, appErrors.WrapWithContext(err, "read status")
	}

	headTree, err := headTree(repo)
	if err != nil {
		return nil, nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, nil, appErrors.WrapWithContext(err, "read index")
	}

	// Sorted traversal keeps repeated calls byte-for-byte identical.
	paths := make([]string, 0, len(status))
	for p := range status {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	result := &Status{}
	snapshot := &StagedSnapshot{}

	for _, p := range paths {
		st := status[p]

		if st.Staging != gitlib.Unmodified && st.Staging != gitlib.Untracked {
			result.Staged = append(result.Staged, FileStatus{Path: p, Kind: statusCodeKind(st.Staging)})

			change := stagedChange{fromPath: p, toPath: p}
			change.from, err = fileFromTree(headTree, p)
			if err != nil {
				return nil, nil, appErrors.WrapWithContext(err, "read HEAD blob")
			}
			change.to, err = fileFromIndex(idx, repo, p)
			if err != nil {
				return nil, nil, appErrors.WrapWithContext(err, "read index blob")
			}
			if st.Staging == gitlib.Deleted {
				change.toPath = ""
			}
			if st.Staging == gitlib.Added {
				change.fromPath = ""
			}
			snapshot.changes = append(snapshot.changes, change)
		}

		switch {
		case st.Worktree == gitlib.Untracked:
			result.Unstaged = append(result.Unstaged, FileStatus{Path: p, Kind: KindUntracked})
		case st.Worktree != gitlib.Unmodified:
			result.Unstaged = append(result.Unstaged, FileStatus{Path: p, Kind: statusCodeKind(st.Worktree)})
		}
	}

	if i.logConfig != nil && i.logConfig.Debug.Git {
		i.logger.WithFields(logrus.Fields{
			logging.StandardFields.Component: logging.ComponentNames.GitRepo,
			"staged_count":                   len(result.Staged),
			"unstaged_count":                 len(result.Unstaged),
		}).Debug("Repository status inspected")
	}

	return result, snapshot, nil
}

// BuildStagedDiffSet converts a snapshot into a path-keyed before/after map.
//
// Content extraction is best effort: a side whose blob is missing, binary,
// or undecodable becomes the empty sentinel rather than failing the whole
// set; a degraded entry still gives the AI something to work with. Entries
// key by destination path, falling back to the source path for deletions.
func (i *Inspector) BuildStagedDiffSet(snapshot *StagedSnapshot) (StagedDiffSet, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if snapshot == nil {
		return nil, appErrors.ErrStaleSnapshot
	}

	set := make(StagedDiffSet, len(snapshot.changes))
	for _, change := range snapshot.changes {
		path := change.toPath
		if path == "" {
			path = change.fromPath
		}
		if path == "" {
			return nil, appErrors.ValidationError("staged change", "has neither source nor destination path")
		}

		set[path] = DiffEntry{
			Path:   path,
			Before: blobContent(change.from),
			After:  blobContent(change.to),
		}
	}
	return set, nil
}

// StageFiles stages exactly the named files.
//
// The operation is not atomic across the list: a mid-list failure leaves
// earlier files staged. Callers re-read status afterward and retrying is
// cheap, so partial staging is accepted.
func (i *Inspector) StageFiles(path string, files []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	repo, err := open(path)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return appErrors.WrapWithContext(err, "resolve worktree")
	}

	for _, file := range files {
		if _, err := wt.Add(file); err != nil {
			return appErrors.WrapWithContext(err, "stage "+file)
		}
	}
	return nil
}

// UnstageFiles removes the named files from the index, keeping worktree
// content. Files that are not currently staged are skipped: unstaging
// nothing is a no-op success, never an error.
func (i *Inspector) UnstageFiles(path string, files []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	repo, err := open(path)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return appErrors.WrapWithContext(err, "resolve worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return appErrors.WrapWithContext(err, "read status")
	}

	staged := make([]string, 0, len(files))
	for _, file := range files {
		st, ok := status[file]
		if ok && st.Staging != gitlib.Unmodified && st.Staging != gitlib.Untracked {
			staged = append(staged, file)
		}
	}
	if len(staged) == 0 {
		return nil
	}

	if err := wt.Restore(&gitlib.RestoreOptions{Staged: true, Files: staged}); err != nil {
		return appErrors.WrapWithContext(err, "unstage files")
	}
	return nil
}

// UnstageAll resets the whole index to HEAD, keeping worktree content.
// An index with nothing staged is a no-op success.
func (i *Inspector) UnstageAll(path string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	repo, err := open(path)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return appErrors.WrapWithContext(err, "resolve worktree")
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// No commits yet; a mixed reset has no commit to target, so
			// clearing the index is the equivalent.
			idx, ierr := repo.Storer.Index()
			if ierr != nil {
				return appErrors.WrapWithContext(ierr, "read index")
			}
			idx.Entries = nil
			if serr := repo.Storer.SetIndex(idx); serr != nil {
				return appErrors.WrapWithContext(serr, "clear index")
			}
			return nil
		}
		return appErrors.WrapWithContext(err, "resolve HEAD")
	}

	if err := wt.Reset(&gitlib.ResetOptions{Mode: gitlib.MixedReset, Commit: head.Hash()}); err != nil {
		return appErrors.WrapWithContext(err, "unstage all")
	}
	return nil
}

// Commit records the currently staged changes with the given message.
func (i *Inspector) Commit(path, message string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if message == "" {
		return appErrors.EmptyFieldError("commit message")
	}

	repo, err := open(path)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return appErrors.WrapWithContext(err, "resolve worktree")
	}

	if _, err := wt.Commit(message, &gitlib.CommitOptions{}); err != nil {
		return appErrors.WrapWithContext(err, "commit staged changes")
	}

	i.logger.WithField(logging.StandardFields.Component, logging.ComponentNames.GitRepo).
		Info("Committed staged changes")
	return nil
}

// headTree resolves the tree of the current commit. A repository without
// any commit yields a nil tree: every staged file is then new.
func headTree(repo *gitlib.Repository) (*object.Tree, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, appErrors.WrapWithContext(err, "resolve HEAD")
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "resolve HEAD commit")
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "resolve HEAD tree")
	}
	return tree, nil
}

// fileFromTree looks up a path in a tree, treating "not found" as nil.
func fileFromTree(tree *object.Tree, path string) (*object.File, error) {
	if tree == nil {
		return nil, nil
	}
	f, err := tree.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// fileFromIndex looks up a path in the index, treating "not found" as nil.
func fileFromIndex(idx *gitindex.Index, repo *gitlib.Repository, path string) (*object.File, error) {
	if idx == nil || repo == nil {
		return nil, nil
	}
	entry, err := idx.Entry(path)
	if errors.Is(err, gitindex.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	blob, err := object.GetBlob(repo.Storer, entry.Hash)
	if err != nil {
		return nil, err
	}
	return object.NewFile(entry.Name, entry.Mode, blob), nil
}

// blobContent decodes a file's content, collapsing every unreadable case
// (nil side, binary data, read failure) to the empty sentinel.
func blobContent(f *object.File) string {
	if f == nil {
		return ""
	}
	if binary, err := f.IsBinary(); err != nil || binary {
		return ""
	}
	content, err := f.Contents()
	if err != nil {
		return ""
	}
	return content
}
