package main

import (
	"os"
	"path/filepath"

	"github.com/pescuma/siri/lib/blame"
	"github.com/pescuma/siri/lib/consoles"
	"github.com/pescuma/siri/lib/filters"
	"github.com/pescuma/siri/lib/vcs"
)

type resolverOptions struct {
	Revision  string
	Backend   vcs.Backend
	Recursive bool
	Filter    filters.PathFilter
	Blame     *blame.Options
}

// resolver turns command line arguments into blame targets, sharing one
// repository and aggregator between the arguments in the same repository.
type resolver struct {
	console consoles.Console
	opts    *resolverOptions
	repos   map[string]*resolvedRepo
}

type resolvedRepo struct {
	repo       *vcs.Repository
	aggregator *blame.Aggregator
}

func newResolver(console consoles.Console, opts *resolverOptions) *resolver {
	return &resolver{
		console: console,
		opts:    opts,
		repos:   map[string]*resolvedRepo{},
	}
}

func (r *resolver) Resolve(cwd string, filename string) *blame.Target {
	target, err := r.resolve(cwd, filename)
	if err != nil {
		return &blame.Target{Name: filename, Err: err}
	}
	return target
}

func (r *resolver) resolve(cwd string, filename string) (*blame.Target, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)

	root, err := vcs.FindRoot(path)
	if err != nil {
		return nil, err
	}

	rr, err := r.openRepo(root)
	if err != nil {
		return nil, err
	}

	rel, err := rr.repo.RelativePath(path)
	if err != nil {
		return nil, err
	}

	result := &blame.Target{
		Name:       filename,
		Aggregator: rr.aggregator,
	}

	stat, err := os.Stat(path)
	if err == nil && stat.IsDir() {
		result.Dir = true
		result.Name = rel
		if rel == "" {
			result.Name = "."
		}

		files, err := rr.repo.ListFiles(rel, &vcs.ListOptions{
			Recursive: r.opts.Recursive,
			Skipped: func(p string) {
				r.console.Verbosef("Skipping binary file %v\n", p)
			},
		})
		if err != nil {
			return nil, err
		}

		result.Files = filters.Apply(files, r.opts.Filter)

	} else if r.opts.Filter(rel) {
		result.Files = []string{rel}
	}

	return result, nil
}

func (r *resolver) openRepo(root string) (*resolvedRepo, error) {
	if rr, ok := r.repos[root]; ok {
		return rr, nil
	}

	repo, err := vcs.Open(root, r.opts.Revision)
	if err != nil {
		return nil, err
	}

	attributor, err := repo.NewAttributor(r.opts.Backend)
	if err != nil {
		return nil, err
	}

	r.console.Verbosef("Using repository %v at %v (%v)\n", root, repo.Revision(), repo.Hash())

	rr := &resolvedRepo{
		repo:       repo,
		aggregator: blame.NewAggregator(attributor, r.opts.Blame),
	}
	r.repos[root] = rr
	return rr, nil
}
