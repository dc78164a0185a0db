// Package vcs checks whether a dataset directory is under git version
// control and whether it has uncommitted changes. A clean checkout lets
// `git checkout` undo a rename that failed part way.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Status describes the version control state of a directory.
type Status struct {
	Dir    string `json:"dir"`
	InRepo bool   `json:"in_repo"`
	// Root is the worktree root, empty when the directory is not in a repository.
	Root  string `json:"root,omitempty"`
	Clean bool   `json:"clean"`
	// Dirty lists repository-relative paths under Dir with changes, including
	// untracked files.
	Dirty []string `json:"dirty,omitempty"`
}

// Inspect opens the repository enclosing dir, if any, and reports changes
// below dir. A directory outside any repository is reported with InRepo
// false and no error.
func Inspect(dir string) (*Status, error) {
	abs, err := resolve(dir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return &Status{Dir: abs}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, fmt.Errorf("failed to relate %s to %s: %w", abs, root, err)
	}
	rel = filepath.ToSlash(rel)

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	status := &Status{Dir: abs, InRepo: true, Root: root}
	for path, fs := range st {
		if !within(path, rel) {
			continue
		}
		if fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified {
			status.Dirty = append(status.Dirty, path)
		}
	}
	sort.Strings(status.Dirty)
	status.Clean = len(status.Dirty) == 0
	return status, nil
}

func resolve(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	return abs, nil
}

func within(path, rel string) bool {
	if rel == "." {
		return true
	}
	return path == rel || strings.HasPrefix(path, rel+"/")
}
