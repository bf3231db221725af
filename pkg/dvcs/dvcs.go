// Package dvcs answers version control questions about the files of a collection checkout.
//
// It tells whether files are tracked, staged or modified, and stages the documents
// written by metadata operations. Committing is left to callers.
package dvcs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/oneconcern/ddr/pkg/errors"
)

var (
	// ErrNotRepository is returned when a path is not inside a git work tree
	ErrNotRepository = errors.New("not a git repository")

	// ErrOutside is returned for paths which are not inside the work tree
	ErrOutside = errors.New("path is outside the repository")

	// ErrGit wraps any other version control error
	ErrGit = errors.New("git error")
)

// State of a file in the work tree
type State string

// File states
const (
	Unmodified State = "unmodified"
	Untracked  State = "untracked"
	Staged     State = "staged"
	Modified   State = "modified"
)

// Repo is a git work tree
type Repo struct {
	root string
	wt   *git.Worktree
}

// Open the work tree which holds path
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository.Wrapf("%s", path)
		}
		return nil, ErrGit.Wrap(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ErrGit.Wrap(err)
	}
	return &Repo{root: wt.Filesystem.Root(), wt: wt}, nil
}

// Root directory of the work tree
func (r *Repo) Root() string {
	return r.root
}

func (r *Repo) rel(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path)), nil
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutside.Wrapf("%s", path)
	}
	return filepath.ToSlash(rel), nil
}

// Status of a file. Paths are absolute or relative to the root.
func (r *Repo) Status(path string) (State, error) {
	rel, err := r.rel(path)
	if err != nil {
		return "", err
	}
	st, err := r.wt.Status()
	if err != nil {
		return "", ErrGit.Wrap(err)
	}
	// unchanged files are not listed
	fs, ok := st[rel]
	if !ok {
		return Unmodified, nil
	}
	return stateOf(fs), nil
}

func stateOf(fs *git.FileStatus) State {
	switch {
	case fs.Worktree == git.Untracked:
		return Untracked
	case fs.Worktree != git.Unmodified:
		return Modified
	case fs.Staging != git.Unmodified:
		return Staged
	default:
		return Unmodified
	}
}

// Changes lists the files which are not unmodified, sorted by path
func (r *Repo) Changes() (map[string]State, []string, error) {
	st, err := r.wt.Status()
	if err != nil {
		return nil, nil, ErrGit.Wrap(err)
	}
	res := make(map[string]State, len(st))
	paths := make([]string, 0, len(st))
	for p, fs := range st {
		if s := stateOf(fs); s != Unmodified {
			res[p] = s
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return res, paths, nil
}

// Stage files. Paths are absolute or relative to the root.
func (r *Repo) Stage(paths ...string) error {
	for _, p := range paths {
		rel, err := r.rel(p)
		if err != nil {
			return err
		}
		if _, err = r.wt.Add(rel); err != nil {
			return ErrGit.Wrapf("staging %s: %v", rel, err)
		}
	}
	return nil
}
