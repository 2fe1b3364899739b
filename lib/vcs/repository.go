package vcs

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

// Repository is a git working tree pinned to a revision. It must be used
// from a single goroutine; attributors open their own handles.
type Repository struct {
	root     string
	revision string
	hash     plumbing.Hash
	gitRepo  *git.Repository
	commit   *object.Commit
}

func Open(root string, revision string) (*Repository, error) {
	if revision == "" {
		revision = "HEAD"
	}

	gitRepo, err := git.PlainOpen(root)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening git repository at %v", root)
	}

	hash, err := gitRepo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, errors.Wrapf(err, "%v: unknown revision %v", root, revision)
	}

	commit, err := gitRepo.CommitObject(*hash)
	if err != nil {
		return nil, errors.Wrapf(err, "%v: error loading commit %v", root, hash)
	}

	return &Repository{
		root:     root,
		revision: revision,
		hash:     *hash,
		gitRepo:  gitRepo,
		commit:   commit,
	}, nil
}

func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) Revision() string {
	return r.revision
}

func (r *Repository) Hash() string {
	return r.hash.String()
}

// RelativePath converts an absolute path inside the working tree to the
// slash separated path used by git.
func (r *Repository) RelativePath(path string) (string, error) {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", nil
	}
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return "", errors.Wrapf(ErrNotInRepository, "%v is outside %v", path, r.root)
	}

	return rel, nil
}

type ListOptions struct {
	Recursive bool
	// Skipped is called for each binary file left out of the result
	Skipped func(path string)
}

// ListFiles lists the text files tracked at dir in the revision, sorted by path.
func (r *Repository) ListFiles(dir string, opts *ListOptions) ([]string, error) {
	tree, err := r.commit.Tree()
	if err != nil {
		return nil, err
	}

	if dir != "" {
		tree, err = tree.Tree(dir)
		if err == object.ErrDirectoryNotFound {
			return nil, errors.Wrapf(ErrNotFound, "%v", dir)
		} else if err != nil {
			return nil, err
		}
	}

	var result []string

	add := func(name string, file *object.File) error {
		isText, err := isTextFile(file)
		if err != nil {
			return err
		}

		if !isText {
			if opts.Skipped != nil {
				opts.Skipped(name)
			}
			return nil
		}

		result = append(result, name)
		return nil
	}

	if opts.Recursive {
		err = tree.Files().ForEach(func(file *object.File) error {
			return add(joinPath(dir, file.Name), file)
		})
		if err != nil {
			return nil, err
		}

	} else {
		for i := range tree.Entries {
			entry := &tree.Entries[i]
			if !entry.Mode.IsFile() {
				continue
			}

			file, err := tree.TreeEntryFile(entry)
			if err != nil {
				return nil, err
			}

			err = add(joinPath(dir, entry.Name), file)
			if err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(result)
	return result, nil
}

func (r *Repository) NewAttributor(backend Backend) (Attributor, error) {
	switch backend {
	case "", BackendGoGit:
		return newGoGitAttributor(r.root, r.hash), nil
	case BackendGit:
		return newCLIAttributor(r.root, r.hash.String())
	default:
		return nil, errors.Errorf("unknown blame backend: %v", backend)
	}
}

func joinPath(dir string, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func isTextFile(file *object.File) (bool, error) {
	reader, err := file.Reader()
	if err != nil {
		return false, err
	}

	defer reader.Close()

	sample, err := io.ReadAll(io.LimitReader(reader, 8000))
	if err != nil {
		return false, err
	}

	return !enry.IsBinary(sample), nil
}
